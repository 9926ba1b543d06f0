package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
)

// PgxLedgerStore implements LedgerStore on PostgreSQL. Reads go to the pool;
// RunInTx opens a transaction and hands out a LedgerTx bound to it.
type PgxLedgerStore struct {
	BaseRepository
}

// NewLedgerStore creates the PostgreSQL-backed ledger store.
func NewLedgerStore(dbPool *pgxpool.Pool) *PgxLedgerStore {
	return &PgxLedgerStore{BaseRepository: BaseRepository{Pool: dbPool}}
}

var (
	_ portsrepo.LedgerStore    = (*PgxLedgerStore)(nil)
	_ portsrepo.LedgerTx       = (*pgxLedgerTx)(nil)
	_ portsrepo.LedgerSnapshot = (*pgxSnapshot)(nil)
)

// pgxLedgerTx is the LedgerTx view of an open transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

// RunInTx commits when fn succeeds and rolls back otherwise.
func (s *PgxLedgerStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored after a successful commit
	defer s.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// pgxSnapshot reads through a REPEATABLE READ transaction, so every query sees
// the snapshot taken by the first one.
type pgxSnapshot struct {
	tx pgx.Tx
}

func (v *pgxSnapshot) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return listAccounts(ctx, v.tx)
}

func (v *pgxSnapshot) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return listInvoices(ctx, v.tx)
}

func (v *pgxSnapshot) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return listPayments(ctx, v.tx)
}

func (v *pgxSnapshot) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return listJournalEntries(ctx, v.tx)
}

// ReadSnapshot runs fn inside a read-only REPEATABLE READ transaction.
func (s *PgxLedgerStore) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin snapshot transaction", err)
	}
	defer s.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &pgxSnapshot{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}
