package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
)

// LedgerService issues invoices, applies payments and exposes the resulting journal.
// Every mutation and its journal entry are persisted as one unit; payments against
// the same invoice are serialised through the locker.
type LedgerService struct {
	BaseService
	store    portsrepo.LedgerStore
	accounts portssvc.AccountDirectory
	locker   portsrepo.InvoiceLocker
	posting  domain.PostingAccounts
	now      func() time.Time
	newID    func() string
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*LedgerService)

// WithPostingAccounts overrides the account codes used for postings.
func WithPostingAccounts(posting domain.PostingAccounts) LedgerServiceOption {
	return func(s *LedgerService) {
		s.posting = posting
	}
}

// WithClock sets the time source used for default dates and audit fields.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *LedgerService) {
		s.now = now
	}
}

// WithIDGenerator sets the identifier source for invoices, payments, entries and lines.
func WithIDGenerator(newID func() string) LedgerServiceOption {
	return func(s *LedgerService) {
		s.newID = newID
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(store portsrepo.LedgerStore, accounts portssvc.AccountDirectory, locker portsrepo.InvoiceLocker, options ...LedgerServiceOption) *LedgerService {
	svc := &LedgerService{
		store:    store,
		accounts: accounts,
		locker:   locker,
		posting:  domain.DefaultPostingAccounts(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure LedgerService implements the service facades
var (
	_ portssvc.InvoiceSvcFacade = (*LedgerService)(nil)
	_ portssvc.PaymentSvcFacade = (*LedgerService)(nil)
	_ portssvc.JournalSvcFacade = (*LedgerService)(nil)
)

// CreateInvoice issues an invoice and records Dr receivable / Cr revenue / Cr tax payable.
func (s *LedgerService) CreateInvoice(ctx context.Context, input portssvc.CreateInvoiceInput) (*domain.Invoice, error) {
	number, err := validateInvoiceInput(input)
	if err != nil {
		s.LogWarn(ctx, err, "Invalid invoice input", slog.String("invoice_number", input.InvoiceNumber))
		return nil, err
	}

	accounts, err := lookupAccounts(ctx, s.accounts, s.posting.Receivable, s.posting.Revenue, s.posting.TaxPayable)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve invoice posting accounts", slog.String("invoice_number", number))
		return nil, err
	}

	invoice, entry := issueInvoice(number, input, accounts[0], accounts[1], accounts[2], s.now(), s.newID)

	if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
		s.LogError(ctx, err, "Invoice entry failed balance validation", slog.String("invoice_number", number))
		return nil, err
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertInvoice(ctx, invoice); err != nil {
			return err
		}
		return tx.InsertJournalEntry(ctx, entry)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create invoice", slog.String("invoice_number", number))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", number),
		slog.String("total", invoice.TotalAmount.StringFixed(accounting.AmountScale)),
		slog.String("journal_entry_id", entry.JournalEntryID))
	return &invoice, nil
}

// ApplyPayment settles part or all of an invoice and records Dr cash / Cr receivable.
// The invoice is locked, re-read inside the unit of work and written back only if its
// version is unchanged.
func (s *LedgerService) ApplyPayment(ctx context.Context, input portssvc.ApplyPaymentInput) (*domain.Payment, error) {
	invoiceID := strings.TrimSpace(input.InvoiceID)
	if invoiceID == "" {
		err := apperrors.NewValidationError("invoiceId", "must not be blank")
		s.LogWarn(ctx, err, "Invalid payment input")
		return nil, err
	}
	if err := validatePaymentText(input); err != nil {
		s.LogWarn(ctx, err, "Invalid payment input", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	accounts, err := lookupAccounts(ctx, s.accounts, s.posting.Cash, s.posting.Receivable)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve payment posting accounts", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, invoiceID)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to acquire invoice lock", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	defer unlock()

	var payment domain.Payment
	err = s.store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, err := tx.FindInvoiceByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		now := s.now()
		updated, err := settle(*current, input.Amount, now)
		if err != nil {
			return err
		}

		var entry domain.JournalEntry
		payment, entry = recordPayment(updated, input, accounts[0], accounts[1], now, s.newID)
		if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
			return err
		}

		if err := tx.UpdateInvoiceBalance(ctx, updated, current.Version); err != nil {
			return err
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}
		return tx.InsertJournalEntry(ctx, entry)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to apply payment",
			slog.String("invoice_id", invoiceID),
			slog.String("amount", input.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", payment.Amount.StringFixed(accounting.AmountScale)))
	return &payment, nil
}

// FindInvoice retrieves an invoice by its invoice number.
func (s *LedgerService) FindInvoice(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	invoice, err := s.store.FindInvoiceByNumber(ctx, strings.TrimSpace(invoiceNumber))
	if err != nil {
		s.logFailure(ctx, err, "Failed to find invoice", slog.String("invoice_number", invoiceNumber))
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice by its identifier.
func (s *LedgerService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.store.FindInvoiceByID(ctx, strings.TrimSpace(invoiceID))
	if err != nil {
		s.logFailure(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns all invoices in creation order.
func (s *LedgerService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// ListPaymentsForInvoice returns the payments applied to an existing invoice.
func (s *LedgerService) ListPaymentsForInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if _, err := s.store.FindInvoiceByID(ctx, invoiceID); err != nil {
		s.logFailure(ctx, err, "Failed to find invoice for payments", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	payments, err := s.store.ListPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListAllPayments returns every payment in creation order.
func (s *LedgerService) ListAllPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetJournalEntry retrieves a committed entry with its lines.
func (s *LedgerService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.store.FindJournalEntryByID(ctx, strings.TrimSpace(journalEntryID))
	if err != nil {
		s.logFailure(ctx, err, "Failed to get journal entry", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries returns every committed entry in creation order.
func (s *LedgerService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.store.ListJournalEntries(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// logFailure logs business rejections at warn and everything else at error.
func (s *LedgerService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInternal, apperrors.KindConfiguration, apperrors.KindImbalance:
		s.LogError(ctx, err, msg, keyvals...)
	default:
		s.LogWarn(ctx, err, msg, keyvals...)
	}
}
