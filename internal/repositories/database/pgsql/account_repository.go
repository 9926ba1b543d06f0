package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, account_type`

// FindAccountByCode retrieves an account by its unique code.
func (s *PgxLedgerStore) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	rows, err := s.Pool.Query(ctx, query, code)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account "+code, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: "account", Key: code}
		}
		return nil, apperrors.NewAppError(500, "failed to scan account "+code, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts retrieves the whole chart ordered by code.
func (s *PgxLedgerStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return listAccounts(ctx, s.Pool)
}

func listAccounts(ctx context.Context, q querier) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}

	accounts := make([]domain.Account, 0, len(ms))
	for _, m := range ms {
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	return accounts, nil
}
