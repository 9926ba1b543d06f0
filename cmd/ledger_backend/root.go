package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/SscSPs/invoice_ledger/internal/adapters/lock"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ledger/internal/platform/config"
	"github.com/SscSPs/invoice_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/invoice_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_ledger/pkg/database"
)

var version = "1.0.0"

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledger_backend",
		Short: "Invoice ledger: double-entry invoices and payments",
		Long: `Invoice ledger issues invoices, applies payments against them and posts
every change as a balanced journal entry to AR, REV, VAT and CASH.

Configuration is read from the environment (and a .env file if present):
  DB_DRIVER           postgres (default) or memory
  PGSQL_URL           PostgreSQL connection string
  REDIS_ADDR          enables the Redis invoice lock, shared rate limits and the worker
  JWT_SECRET          enables bearer-token authentication when set
  JWT_ISSUER          required "iss" claim, if set
  JWT_AUDIENCE        required "aud" claim, if set`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(logger),
		newMigrateCmd(logger),
		newWorkerCmd(logger),
		newVerifyCmd(logger),
	)
	return root
}

// runtimeDeps are the shared resources a command opens from configuration.
type runtimeDeps struct {
	store  portsrepo.LedgerStore
	locker portsrepo.InvoiceLocker
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func (d *runtimeDeps) Close(logger *slog.Logger) {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			logger.Warn("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	if d.pool != nil {
		database.ClosePgxPool(d.pool)
	}
}

// openDeps connects the configured store and picks the invoice locker.
func openDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*runtimeDeps, error) {
	deps := &runtimeDeps{}

	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory ledger store; data is lost on exit")
		deps.store = memory.New(domain.DefaultChartOfAccounts())
	default:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		deps.pool = pool
		deps.store = pgsql.NewLedgerStore(pool)
	}

	if cfg.RedisAddr != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			deps.Close(logger)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.redis = client
		deps.locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockTimeout)
		logger.Info("Using redis invoice lock", slog.String("addr", cfg.RedisAddr))
	} else {
		deps.locker = lock.NewLocalLocker(cfg.LockTimeout)
	}

	return deps, nil
}
