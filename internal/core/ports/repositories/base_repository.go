package repositories

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// LedgerTx is the set of reads and writes available inside one atomic unit.
// Nothing written through a LedgerTx is visible to readers until the unit commits.
type LedgerTx interface {
	// FindInvoiceByIDForUpdate loads an invoice and holds it exclusively until the unit ends.
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// InsertInvoice stores a new invoice. A taken invoice number fails with apperrors.ErrDuplicate.
	InsertInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceBalance writes outstanding amount, status and version, provided the stored
	// version still equals expectedVersion. Otherwise it fails with apperrors.ErrConcurrentModification.
	UpdateInvoiceBalance(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error

	// InsertPayment stores a new payment.
	InsertPayment(ctx context.Context, payment domain.Payment) error

	// InsertJournalEntry stores an entry and its lines. Unbalanced entries are refused.
	InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// LedgerSnapshot lists the whole ledger as committed at one instant.
// Writes that commit while a snapshot is open are not visible through it.
type LedgerSnapshot interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// RunInTx executes fn as a single all-or-nothing unit. If fn returns an error
	// nothing it wrote is persisted and the error is returned unchanged.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error

	// ReadSnapshot executes fn against a read-only view of the ledger. The view is
	// only valid until fn returns.
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap LedgerSnapshot) error) error
}
