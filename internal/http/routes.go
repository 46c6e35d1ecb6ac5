package http

import (
	"time"

	"casino_wallet/internal/config"
	"casino_wallet/internal/http/handlers"
	"casino_wallet/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the provider callback, the user-facing request
// endpoints and the admin workflow endpoints.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	h := handlers.NewHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db)

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rateLimit := middleware.RedisRateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindowSecs)*time.Second)

	api := r.Group("/api")
	api.Use(rateLimit)

	// Provider settlement callback
	api.POST("/callback", h.Callback)

	// User-side requests
	api.POST("/deposit-transaction", h.CreateDeposit)
	api.POST("/withdraw/request", h.CreateWithdrawal)

	// Admin workflow operations
	admin := api.Group("")
	admin.Use(middleware.AdminJWT())
	{
		admin.GET("/deposit-transaction", h.ListDeposits)
		admin.GET("/deposit-transaction/:id", h.GetDeposit)
		admin.PUT("/deposit-transaction/:id", h.UpdateDepositStatus)
		admin.DELETE("/deposit-transaction/:id", h.DeleteDeposit)
		admin.GET("/deposit-search-transaction/search", h.SearchDeposits)

		admin.GET("/withdraw", h.ListWithdrawals)
		admin.GET("/withdraw/:id", h.GetWithdrawal)
		admin.PUT("/withdraw/:id", h.UpdateWithdrawalStatus)
		admin.DELETE("/withdraw/:id", h.DeleteWithdrawal)

		admin.GET("/accounts/:id", h.GetAccount)
		admin.GET("/accounts/:id/game-history", h.GetAccountHistory)
	}
}
