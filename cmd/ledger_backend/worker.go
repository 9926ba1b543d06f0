package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/SscSPs/invoice_ledger/internal/core/services"
	"github.com/SscSPs/invoice_ledger/internal/jobs"
)

func newWorkerCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs, including the scheduled ledger integrity check",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPostgresConfig()
			if err != nil {
				return err
			}
			if cfg.RedisAddr == "" {
				return errors.New("worker requires REDIS_ADDR")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deps, err := openDeps(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer deps.Close(logger)

			container := services.NewServiceContainer(cfg, deps.store, deps.locker)
			integrityJob := jobs.NewIntegrityCheckJob(container.Reporting, logger)

			integrityTask, err := jobs.NewIntegrityCheckTask("cron")
			if err != nil {
				return fmt.Errorf("build integrity task: %w", err)
			}

			worker, err := jobs.NewWorker(jobs.WorkerConfig{
				RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
				Logger:    logger,
				Handlers: []jobs.TaskHandler{
					{Type: jobs.TaskLedgerIntegrityCheck, Handler: integrityJob.Handle},
				},
				Cron: []jobs.CronRegistration{
					{Spec: cfg.IntegrityCheckCron, Task: integrityTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
				},
			})
			if err != nil {
				return fmt.Errorf("init worker: %w", err)
			}

			logger.Info("Worker starting", slog.String("integrity_cron", cfg.IntegrityCheckCron))
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("worker run: %w", err)
			}
			return nil
		},
	}
}
