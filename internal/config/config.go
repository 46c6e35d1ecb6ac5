package config

import (
	"os"
	"strconv"

	"casino_wallet/internal/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort     string
	AppEnv      string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Platform-wide withdrawal bounds (per request)
	WithdrawalMin decimal.Decimal
	WithdrawalMax decimal.Decimal

	// Rate limiting for public endpoints
	APIRateLimit      int
	APIRateWindowSecs int
}

// Load reads configuration from the environment. Missing critical values
// are fatal; everything else has defaults.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// Observed platform bounds: 200 - 30000 BDT per withdrawal.
	withdrawalMin := decimal.NewFromInt(200)
	if v := os.Getenv("WITHDRAWAL_MIN"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			withdrawalMin = d
		}
	}

	withdrawalMax := decimal.NewFromInt(30000)
	if v := os.Getenv("WITHDRAWAL_MAX"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			withdrawalMax = d
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	return &Config{
		AppPort:           port,
		AppEnv:            env,
		DatabaseURL:       dbURL,
		JWTSecret:         jwtSecret,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogJSON:           os.Getenv("LOG_JSON") == "true",
		WithdrawalMin:     withdrawalMin,
		WithdrawalMax:     withdrawalMax,
		APIRateLimit:      apiRateLimit,
		APIRateWindowSecs: apiRateWindow,
	}
}

// Production reports whether the service runs with production error
// shaping (no internal error detail in responses).
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}
