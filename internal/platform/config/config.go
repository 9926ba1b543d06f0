package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	DBDriver       string
	MigrationsPath string
	Port           string
	IsProduction   bool

	// Empty JWTSecret disables bearer-token authentication.
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	JWTLeeway          time.Duration
	CORSAllowedOrigins []string
	RateLimit          string

	// Empty RedisAddr keeps locks and rate-limit counters in process and disables the worker.
	RedisAddr   string
	LockTimeout time.Duration
	LockTTL     time.Duration

	ReceivableAccountCode string
	RevenueAccountCode    string
	TaxPayableAccountCode string
	CashAccountCode       string

	IntegrityCheckCron string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_AUDIENCE", "")
	viper.SetDefault("JWT_LEEWAY", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("LOCK_TIMEOUT", "5s")
	viper.SetDefault("LOCK_TTL", "30s")
	viper.SetDefault("RECEIVABLE_ACCOUNT_CODE", "AR")
	viper.SetDefault("REVENUE_ACCOUNT_CODE", "REV")
	viper.SetDefault("TAX_PAYABLE_ACCOUNT_CODE", "VAT")
	viper.SetDefault("CASH_ACCOUNT_CODE", "CASH")
	viper.SetDefault("INTEGRITY_CHECK_CRON", "@every 1h")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           viper.GetString("PGSQL_URL"),
		DBDriver:              strings.ToLower(strings.TrimSpace(viper.GetString("DB_DRIVER"))),
		MigrationsPath:        viper.GetString("MIGRATIONS_PATH"),
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		JWTSecret:             viper.GetString("JWT_SECRET"),
		JWTIssuer:             viper.GetString("JWT_ISSUER"),
		JWTAudience:           viper.GetString("JWT_AUDIENCE"),
		CORSAllowedOrigins:    splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:             viper.GetString("RATE_LIMIT"),
		RedisAddr:             viper.GetString("REDIS_ADDR"),
		ReceivableAccountCode: viper.GetString("RECEIVABLE_ACCOUNT_CODE"),
		RevenueAccountCode:    viper.GetString("REVENUE_ACCOUNT_CODE"),
		TaxPayableAccountCode: viper.GetString("TAX_PAYABLE_ACCOUNT_CODE"),
		CashAccountCode:       viper.GetString("CASH_ACCOUNT_CODE"),
		IntegrityCheckCron:    viper.GetString("INTEGRITY_CHECK_CRON"),
	}

	var err error
	if cfg.LockTimeout, err = parseDuration("LOCK_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.LockTTL, err = parseDuration("LOCK_TTL"); err != nil {
		return nil, err
	}
	if cfg.JWTLeeway, err = parseDuration("JWT_LEEWAY"); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.DBDriver, DriverPostgres, DriverMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set in production. API authentication is disabled.")
	}

	return cfg, nil
}

func parseDuration(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
