package handlers

import (
	"errors"
	"net/http"

	"casino_wallet/internal/config"
	"casino_wallet/internal/repository"
	"casino_wallet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler wires the workflow services behind the HTTP surface.
type Handler struct {
	DB          *pgxpool.Pool
	Accounts    *repository.AccountRepository
	Settlements *service.SettlementService
	Deposits    *service.DepositService
	Withdrawals *service.WithdrawalService

	production bool
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config) *Handler {
	accounts := repository.NewAccountRepository(db)
	deposits := repository.NewDepositRepository(db)
	withdrawals := repository.NewWithdrawalRepository(db)
	methods := repository.NewMethodRepository(db)

	ledger := service.NewLedgerService(accounts)
	commission := service.NewCommissionService(accounts)

	return &Handler{
		DB:          db,
		Accounts:    accounts,
		Settlements: service.NewSettlementService(accounts, ledger, commission),
		Deposits:    service.NewDepositService(deposits, methods, accounts, ledger, commission),
		Withdrawals: service.NewWithdrawalService(withdrawals, methods, accounts, ledger, service.WithdrawalLimits{
			Min: cfg.WithdrawalMin,
			Max: cfg.WithdrawalMax,
		}),
		production: cfg.Production(),
	}
}

// ok writes the success envelope the admin panel and provider expect.
func ok(c *gin.Context, status int, msg string, data any) {
	body := gin.H{"success": true, "message": msg}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps domain errors onto the HTTP taxonomy: validation and conflict
// errors are 400, missing entities 404, everything else 500. Internal
// error detail leaks only outside production.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrMethodInactive),
		errors.Is(err, repository.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrRequestNotFound),
		errors.Is(err, repository.ErrMethodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	default:
		body := gin.H{"success": false, "message": "Server error"}
		if !h.production {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
