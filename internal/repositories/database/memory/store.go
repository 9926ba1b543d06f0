// Package memory is an in-process LedgerStore used for tests and DB_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
)

// Store keeps the ledger in maps guarded by a single RWMutex.
// A unit of work holds the write lock for its whole duration and its writes are
// applied only when fn returns nil.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account // by ID
	accountCodes map[string]string         // code -> ID

	invoices       map[string]domain.Invoice // by ID
	invoiceNumbers map[string]string         // number -> ID
	invoiceOrder   []string

	payments []domain.Payment

	entries    []domain.JournalEntry
	entryIndex map[string]int
}

// New creates a store seeded with the given chart of accounts.
func New(accounts []domain.Account) *Store {
	s := &Store{
		accounts:       make(map[string]domain.Account, len(accounts)),
		accountCodes:   make(map[string]string, len(accounts)),
		invoices:       make(map[string]domain.Invoice),
		invoiceNumbers: make(map[string]string),
		entryIndex:     make(map[string]int),
	}
	for _, acc := range accounts {
		s.accounts[acc.AccountID] = acc
		s.accountCodes[acc.Code] = acc.AccountID
	}
	return s
}

var _ portsrepo.LedgerStore = (*Store)(nil)

func (s *Store) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountCodes[code]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "account", Key: code}
	}
	acc := s.accounts[id]
	return &acc, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAccounts(), nil
}

func (s *Store) listAccounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	slices.SortFunc(out, func(a, b domain.Account) int { return strings.Compare(a.Code, b.Code) })
	return out
}

func (s *Store) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "invoice", Key: invoiceID}
	}
	return &inv, nil
}

func (s *Store) FindInvoiceByNumber(_ context.Context, invoiceNumber string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.invoiceNumbers[invoiceNumber]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "invoice", Key: invoiceNumber}
	}
	inv := s.invoices[id]
	return &inv, nil
}

func (s *Store) ListInvoices(_ context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listInvoices(), nil
}

func (s *Store) listInvoices() []domain.Invoice {
	out := make([]domain.Invoice, 0, len(s.invoiceOrder))
	for _, id := range s.invoiceOrder {
		out = append(out, s.invoices[id])
	}
	return out
}

func (s *Store) ListPaymentsByInvoiceID(_ context.Context, invoiceID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Payment, 0)
	for _, p := range s.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListPayments(_ context.Context) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.payments), nil
}

func (s *Store) FindJournalEntryByID(_ context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.entryIndex[journalEntryID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "journal entry", Key: journalEntryID}
	}
	entry := cloneEntry(s.entries[idx])
	return &entry, nil
}

func (s *Store) ListJournalEntries(_ context.Context) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listJournalEntries(), nil
}

func (s *Store) listJournalEntries() []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, cloneEntry(e))
	}
	return out
}

// ReadSnapshot copies the committed state under one read lock, then runs fn on
// the copy with the lock released.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snap := &snapshot{
		accounts: s.listAccounts(),
		invoices: s.listInvoices(),
		payments: slices.Clone(s.payments),
		entries:  s.listJournalEntries(),
	}
	s.mu.RUnlock()

	return fn(ctx, snap)
}

// snapshot is a frozen copy of the store.
type snapshot struct {
	accounts []domain.Account
	invoices []domain.Invoice
	payments []domain.Payment
	entries  []domain.JournalEntry
}

var _ portsrepo.LedgerSnapshot = (*snapshot)(nil)

func (v *snapshot) ListAccounts(_ context.Context) ([]domain.Account, error) {
	return slices.Clone(v.accounts), nil
}

func (v *snapshot) ListInvoices(_ context.Context) ([]domain.Invoice, error) {
	return slices.Clone(v.invoices), nil
}

func (v *snapshot) ListPayments(_ context.Context) ([]domain.Payment, error) {
	return slices.Clone(v.payments), nil
}

func (v *snapshot) ListJournalEntries(_ context.Context) ([]domain.JournalEntry, error) {
	out := make([]domain.JournalEntry, 0, len(v.entries))
	for _, e := range v.entries {
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

// RunInTx runs fn with exclusive access to the store. fn must only use tx;
// calling the Store's own read methods from inside fn deadlocks.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:    s,
		invoices: make(map[string]domain.Invoice),
		numbers:  make(map[string]string),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// memTx stages writes on top of the committed state.
type memTx struct {
	store *Store

	invoices     map[string]domain.Invoice
	numbers      map[string]string
	invoiceOrder []string
	payments     []domain.Payment
	entries      []domain.JournalEntry
}

var _ portsrepo.LedgerTx = (*memTx)(nil)

func (t *memTx) lookupInvoice(invoiceID string) (domain.Invoice, bool) {
	if inv, ok := t.invoices[invoiceID]; ok {
		return inv, true
	}
	inv, ok := t.store.invoices[invoiceID]
	return inv, ok
}

func (t *memTx) FindInvoiceByIDForUpdate(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, ok := t.lookupInvoice(invoiceID)
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "invoice", Key: invoiceID}
	}
	return &inv, nil
}

func (t *memTx) InsertInvoice(_ context.Context, invoice domain.Invoice) error {
	if _, taken := t.store.invoiceNumbers[invoice.InvoiceNumber]; taken {
		return &apperrors.DuplicateInvoiceError{InvoiceNumber: invoice.InvoiceNumber}
	}
	if _, taken := t.numbers[invoice.InvoiceNumber]; taken {
		return &apperrors.DuplicateInvoiceError{InvoiceNumber: invoice.InvoiceNumber}
	}
	if _, exists := t.lookupInvoice(invoice.InvoiceID); exists {
		return fmt.Errorf("%w: invoice id %s", apperrors.ErrDuplicate, invoice.InvoiceID)
	}

	t.invoices[invoice.InvoiceID] = invoice
	t.numbers[invoice.InvoiceNumber] = invoice.InvoiceID
	t.invoiceOrder = append(t.invoiceOrder, invoice.InvoiceID)
	return nil
}

func (t *memTx) UpdateInvoiceBalance(_ context.Context, invoice domain.Invoice, expectedVersion int64) error {
	current, ok := t.lookupInvoice(invoice.InvoiceID)
	if !ok {
		return &apperrors.NotFoundError{Resource: "invoice", Key: invoice.InvoiceID}
	}
	if current.Version != expectedVersion {
		return &apperrors.ConcurrentModificationError{
			InvoiceID: invoice.InvoiceID,
			Reason:    fmt.Sprintf("expected version %d, found %d", expectedVersion, current.Version),
		}
	}

	current.OutstandingAmount = invoice.OutstandingAmount
	current.Status = invoice.Status
	current.Version = invoice.Version
	current.LastUpdatedAt = invoice.LastUpdatedAt
	t.invoices[current.InvoiceID] = current
	return nil
}

func (t *memTx) InsertPayment(_ context.Context, payment domain.Payment) error {
	if _, ok := t.lookupInvoice(payment.InvoiceID); !ok {
		return &apperrors.NotFoundError{Resource: "invoice", Key: payment.InvoiceID}
	}
	t.payments = append(t.payments, payment)
	return nil
}

func (t *memTx) InsertJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
		return err
	}
	if _, exists := t.store.entryIndex[entry.JournalEntryID]; exists {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.JournalEntryID)
	}
	for _, line := range entry.Lines {
		if _, ok := t.store.accounts[line.AccountID]; !ok {
			return &apperrors.NotFoundError{Resource: "account", Key: line.AccountID}
		}
	}
	t.entries = append(t.entries, cloneEntry(entry))
	return nil
}

// apply publishes the staged writes. Called with the store's write lock held.
func (t *memTx) apply() {
	s := t.store
	for id, inv := range t.invoices {
		s.invoices[id] = inv
	}
	for number, id := range t.numbers {
		s.invoiceNumbers[number] = id
	}
	s.invoiceOrder = append(s.invoiceOrder, t.invoiceOrder...)
	s.payments = append(s.payments, t.payments...)
	for _, e := range t.entries {
		s.entryIndex[e.JournalEntryID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	return e
}
