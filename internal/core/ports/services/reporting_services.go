package services

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// ReportingService defines methods for generating financial reports.
type ReportingService interface {
	// TrialBalance totals debits and credits per account across all committed entries.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// CheckIntegrity re-derives invoice balances and entry totals from the journal and
	// payments and reports every disagreement with the stored state.
	CheckIntegrity(ctx context.Context) (*domain.IntegrityReport, error)
}
