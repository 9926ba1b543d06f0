package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/SscSPs/invoice_ledger/internal/core/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/jobs"
	"github.com/SscSPs/invoice_ledger/internal/platform/config"
)

func newVerifyCmd(logger *slog.Logger) *cobra.Command {
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check ledger integrity and print the report",
		Long: `Re-derives every invoice's outstanding balance and status from its payments,
checks that every journal entry balances and that the trial balance nets to zero.
Exits non-zero when any inconsistency is found.

With --enqueue the check is queued for the worker instead of run in process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx := cmd.Context()

			if enqueue {
				if cfg.RedisAddr == "" {
					return fmt.Errorf("--enqueue requires REDIS_ADDR")
				}
				client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
				defer client.Close()
				info, err := client.EnqueueIntegrityCheck(ctx, "manual")
				if err != nil {
					return fmt.Errorf("enqueue integrity check: %w", err)
				}
				logger.Info("Integrity check enqueued", slog.String("task_id", info.ID))
				return nil
			}

			deps, err := openDeps(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer deps.Close(logger)

			container := services.NewServiceContainer(cfg, deps.store, deps.locker)
			report, err := container.Reporting.CheckIntegrity(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(dto.ToIntegrityReportResponse(report)); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%w: %d issue(s)", jobs.ErrIntegrityViolation, len(report.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Queue the check for the worker instead of running it here")
	return cmd
}
