package services

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// AccountDirectory resolves the chart-of-accounts entries the posting rules need.
type AccountDirectory interface {
	// Lookup returns the account with the given code. A missing code is a
	// deployment problem and fails with apperrors.ErrConfiguration.
	Lookup(ctx context.Context, code string) (domain.Account, error)

	// ListAccounts returns the whole chart ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
