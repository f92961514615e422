package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	DatabaseDSN string
	JWTSecret   string

	// Currency applied to every price in a deployment. Multi-currency
	// carts are not supported.
	Currency string

	// DefaultTaxPercent is applied to newly added cart lines until the
	// cashier overrides it per line.
	DefaultTaxPercent decimal.Decimal

	// CORS origin of the dashboard host UI.
	AllowedOrigin string
}

func Load() Config {
	return Config{
		AppEnv:            getEnv("APP_ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseDSN:       getEnv("DATABASE_DSN", "file:kasir.db?_pragma=busy_timeout(5000)"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret"),
		Currency:          getEnv("CURRENCY", "USD"),
		DefaultTaxPercent: getEnvDecimal("DEFAULT_TAX_PERCENT", decimal.NewFromInt(10)),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "*"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return def
	}

	return d
}
