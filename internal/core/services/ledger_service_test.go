package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/invoice_ledger/internal/adapters/lock"
	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/core/services"
	"github.com/SscSPs/invoice_ledger/internal/repositories/database/memory"
)

var fixedNow = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *services.LedgerService
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New(domain.DefaultChartOfAccounts())
	s.svc = services.NewLedgerService(
		s.store,
		services.NewStaticAccountDirectory(domain.DefaultChartOfAccounts()),
		lock.NewLocalLocker(5*time.Second),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) createInvoice(number, subtotal, rate string) *domain.Invoice {
	inv, err := s.svc.CreateInvoice(s.ctx, portssvc.CreateInvoiceInput{
		InvoiceNumber: number,
		Subtotal:      dec(subtotal),
		TaxRate:       dec(rate),
	})
	s.Require().NoError(err)
	return inv
}

func (s *LedgerServiceTestSuite) pay(invoiceID, amount string) (*domain.Payment, error) {
	return s.svc.ApplyPayment(s.ctx, portssvc.ApplyPaymentInput{InvoiceID: invoiceID, Amount: dec(amount)})
}

func (s *LedgerServiceTestSuite) entries() []domain.JournalEntry {
	entries, err := s.svc.ListJournalEntries(s.ctx)
	s.Require().NoError(err)
	return entries
}

func (s *LedgerServiceTestSuite) reload(invoiceID string) *domain.Invoice {
	inv, err := s.svc.GetInvoice(s.ctx, invoiceID)
	s.Require().NoError(err)
	return inv
}

func (s *LedgerServiceTestSuite) TestCreateInvoice_PostsReceivable() {
	inv := s.createInvoice("INV-001", "100.00", "0.15")

	assertDecimal(s.T(), "15.00", inv.TaxAmount)
	assertDecimal(s.T(), "115.00", inv.TotalAmount)
	assertDecimal(s.T(), "115.00", inv.OutstandingAmount)
	s.Equal(domain.Unpaid, inv.Status)
	s.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)

	entries := s.entries()
	s.Require().Len(entries, 1)
	entry := entries[0]
	s.Equal("Invoice: INV-001", entry.Description)
	s.Require().Len(entry.Lines, 3)

	s.Equal("AR", entry.Lines[0].AccountCode)
	assertDecimal(s.T(), "115.00", entry.Lines[0].Debit)
	s.Equal("REV", entry.Lines[1].AccountCode)
	assertDecimal(s.T(), "100.00", entry.Lines[1].Credit)
	s.Equal("VAT", entry.Lines[2].AccountCode)
	assertDecimal(s.T(), "15.00", entry.Lines[2].Credit)
	s.True(entry.TotalDebits().Equal(entry.TotalCredits()))

	found, err := s.svc.FindInvoice(s.ctx, "INV-001")
	s.Require().NoError(err)
	s.Equal(inv.InvoiceID, found.InvoiceID)
}

func (s *LedgerServiceTestSuite) TestCreateInvoice_ExplicitDateAndTrimmedNumber() {
	inv, err := s.svc.CreateInvoice(s.ctx, portssvc.CreateInvoiceInput{
		InvoiceNumber: "  INV-7  ",
		Subtotal:      dec("10.00"),
		TaxRate:       dec("0"),
		InvoiceDate:   time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Equal("INV-7", inv.InvoiceNumber)
	s.Equal(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	assertDecimal(s.T(), "0", inv.TaxAmount)
	assertDecimal(s.T(), "10.00", inv.TotalAmount)

	entry := s.entries()[0]
	s.Require().Len(entry.Lines, 3)
	s.True(entry.Lines[2].Credit.IsZero())
}

func (s *LedgerServiceTestSuite) TestCreateInvoice_Validation() {
	tests := []struct {
		name  string
		input portssvc.CreateInvoiceInput
		field string
	}{
		{"blank number", portssvc.CreateInvoiceInput{InvoiceNumber: "   ", Subtotal: dec("10"), TaxRate: dec("0.1")}, "invoiceNumber"},
		{"zero subtotal", portssvc.CreateInvoiceInput{InvoiceNumber: "A", Subtotal: dec("0"), TaxRate: dec("0.1")}, "subtotal"},
		{"negative subtotal", portssvc.CreateInvoiceInput{InvoiceNumber: "A", Subtotal: dec("-5"), TaxRate: dec("0.1")}, "subtotal"},
		{"fractional cents", portssvc.CreateInvoiceInput{InvoiceNumber: "A", Subtotal: dec("10.001"), TaxRate: dec("0.1")}, "subtotal"},
		{"negative rate", portssvc.CreateInvoiceInput{InvoiceNumber: "A", Subtotal: dec("10"), TaxRate: dec("-0.01")}, "taxRate"},
		{"rate above one", portssvc.CreateInvoiceInput{InvoiceNumber: "A", Subtotal: dec("10"), TaxRate: dec("1.01")}, "taxRate"},
		{"number too long", portssvc.CreateInvoiceInput{InvoiceNumber: strings.Repeat("N", domain.MaxInvoiceNumberLength+1), Subtotal: dec("10"), TaxRate: dec("0.1")}, "invoiceNumber"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.CreateInvoice(s.ctx, tt.input)
			var vErr *apperrors.ValidationError
			s.Require().ErrorAs(err, &vErr)
			s.Equal(tt.field, vErr.Field)
			s.Equal(apperrors.KindValidation, apperrors.KindOf(err))
		})
	}

	invoices, err := s.svc.ListInvoices(s.ctx)
	s.Require().NoError(err)
	s.Empty(invoices)
	s.Empty(s.entries())
}

func (s *LedgerServiceTestSuite) TestPaymentLifecycle() {
	inv := s.createInvoice("INV-001", "100.00", "0.15")

	payment, err := s.pay(inv.InvoiceID, "50.00")
	s.Require().NoError(err)
	s.Equal(inv.InvoiceID, payment.InvoiceID)
	s.Equal("INV-001", payment.InvoiceNumber)
	s.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), payment.PaymentDate)

	after := s.reload(inv.InvoiceID)
	assertDecimal(s.T(), "65.00", after.OutstandingAmount)
	s.Equal(domain.PartiallyPaid, after.Status)

	entries := s.entries()
	s.Require().Len(entries, 2)
	cashEntry := entries[1]
	s.Equal("Payment for Invoice: INV-001", cashEntry.Description)
	s.Require().Len(cashEntry.Lines, 2)
	s.Equal("CASH", cashEntry.Lines[0].AccountCode)
	assertDecimal(s.T(), "50.00", cashEntry.Lines[0].Debit)
	s.Equal("AR", cashEntry.Lines[1].AccountCode)
	assertDecimal(s.T(), "50.00", cashEntry.Lines[1].Credit)

	_, err = s.pay(inv.InvoiceID, "65.00")
	s.Require().NoError(err)
	paid := s.reload(inv.InvoiceID)
	assertDecimal(s.T(), "0", paid.OutstandingAmount)
	s.Equal(domain.Paid, paid.Status)

	_, err = s.pay(inv.InvoiceID, "10.00")
	var alreadyPaid *apperrors.AlreadyPaidError
	s.Require().ErrorAs(err, &alreadyPaid)
	s.Equal("INV-001", alreadyPaid.InvoiceNumber)
	s.Equal(apperrors.KindDomainState, apperrors.KindOf(err))

	final := s.reload(inv.InvoiceID)
	assertDecimal(s.T(), "0", final.OutstandingAmount)
	s.Equal(paid.Version, final.Version)
	s.Len(s.entries(), 3)

	payments, err := s.svc.ListPaymentsForInvoice(s.ctx, inv.InvoiceID)
	s.Require().NoError(err)
	s.Len(payments, 2)
}

func (s *LedgerServiceTestSuite) TestApplyPayment_Overpayment() {
	inv := s.createInvoice("INV-002", "100.00", "0.15")

	_, err := s.pay(inv.InvoiceID, "200.00")
	var over *apperrors.OverpaymentError
	s.Require().ErrorAs(err, &over)
	assertDecimal(s.T(), "200.00", over.Amount)
	assertDecimal(s.T(), "115.00", over.Outstanding)

	after := s.reload(inv.InvoiceID)
	assertDecimal(s.T(), "115.00", after.OutstandingAmount)
	s.Equal(domain.Unpaid, after.Status)
	s.Equal(inv.Version, after.Version)
	s.Len(s.entries(), 1)

	payments, err := s.svc.ListAllPayments(s.ctx)
	s.Require().NoError(err)
	s.Empty(payments)
}

func (s *LedgerServiceTestSuite) TestApplyPayment_InvalidAmounts() {
	inv := s.createInvoice("INV-003", "10.00", "0.10")

	for _, amount := range []string{"0", "-1.00"} {
		_, err := s.pay(inv.InvoiceID, amount)
		s.ErrorIs(err, apperrors.ErrInvalidAmount, amount)
		s.Equal(apperrors.KindValidation, apperrors.KindOf(err))
	}

	_, err := s.pay(inv.InvoiceID, "1.005")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.pay("   ", "1.00")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.pay("missing", "1.00")
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.Len(s.entries(), 1)
}

func (s *LedgerServiceTestSuite) TestCreateInvoice_NumberAtMaxLength() {
	// Multi-byte characters count once each.
	number := strings.Repeat("é", domain.MaxInvoiceNumberLength)
	inv := s.createInvoice(number, "10.00", "0")
	s.Equal(number, inv.InvoiceNumber)
}

func (s *LedgerServiceTestSuite) TestApplyPayment_TextFieldLengths() {
	inv := s.createInvoice("INV-006", "10.00", "0")

	tests := []struct {
		name  string
		input portssvc.ApplyPaymentInput
		field string
	}{
		{"method too long", portssvc.ApplyPaymentInput{PaymentMethod: strings.Repeat("m", domain.MaxPaymentMethodLength+1)}, "paymentMethod"},
		{"reference too long", portssvc.ApplyPaymentInput{TransactionReference: strings.Repeat("r", domain.MaxTransactionReferenceLength+1)}, "transactionReference"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.input.InvoiceID = inv.InvoiceID
			tt.input.Amount = dec("1.00")
			_, err := s.svc.ApplyPayment(s.ctx, tt.input)
			var vErr *apperrors.ValidationError
			s.Require().ErrorAs(err, &vErr)
			s.Equal(tt.field, vErr.Field)
		})
	}
	s.Len(s.entries(), 1)

	_, err := s.svc.ApplyPayment(s.ctx, portssvc.ApplyPaymentInput{
		InvoiceID:            inv.InvoiceID,
		Amount:               dec("1.00"),
		PaymentMethod:        "  " + strings.Repeat("m", domain.MaxPaymentMethodLength) + "  ",
		TransactionReference: strings.Repeat("r", domain.MaxTransactionReferenceLength),
	})
	s.NoError(err)
}

func (s *LedgerServiceTestSuite) TestApplyPayment_PaidCheckedBeforeAmount() {
	inv := s.createInvoice("INV-004", "10.00", "0")
	_, err := s.pay(inv.InvoiceID, "10.00")
	s.Require().NoError(err)

	_, err = s.pay(inv.InvoiceID, "0")
	s.ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (s *LedgerServiceTestSuite) TestApplyPayment_KeepsOptionalFields() {
	inv := s.createInvoice("INV-005", "10.00", "0")
	p, err := s.svc.ApplyPayment(s.ctx, portssvc.ApplyPaymentInput{
		InvoiceID:            inv.InvoiceID,
		Amount:               dec("4.00"),
		PaymentDate:          time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		PaymentMethod:        " BANK_TRANSFER ",
		TransactionReference: "TX-1",
	})
	s.Require().NoError(err)
	s.Equal("BANK_TRANSFER", p.PaymentMethod)
	s.Equal("TX-1", p.TransactionReference)
	s.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.PaymentDate)
	s.Equal(p.PaymentDate, s.entries()[1].EntryDate)
}

func (s *LedgerServiceTestSuite) TestCreateInvoice_DuplicateNumber() {
	s.createInvoice("INV-001", "100.00", "0.15")

	_, err := s.svc.CreateInvoice(s.ctx, portssvc.CreateInvoiceInput{
		InvoiceNumber: "INV-001",
		Subtotal:      dec("5.00"),
		TaxRate:       dec("0.2"),
	})
	var dup *apperrors.DuplicateInvoiceError
	s.Require().ErrorAs(err, &dup)
	s.Equal(apperrors.KindDuplicate, apperrors.KindOf(err))

	invoices, err := s.svc.ListInvoices(s.ctx)
	s.Require().NoError(err)
	s.Len(invoices, 1)
	s.Len(s.entries(), 1)
}

func (s *LedgerServiceTestSuite) TestInstallmentsSumToTotal() {
	inv := s.createInvoice("INV-010", "99.99", "0.07")
	// 99.99 * 0.07 = 6.9993 -> 7.00
	assertDecimal(s.T(), "106.99", inv.TotalAmount)

	installments := []string{"0.01", "50.00", "33.33", "23.65"}
	prev := inv.OutstandingAmount
	for _, amt := range installments {
		_, err := s.pay(inv.InvoiceID, amt)
		s.Require().NoError(err)
		cur := s.reload(inv.InvoiceID)
		s.True(cur.OutstandingAmount.LessThan(prev))
		s.False(cur.OutstandingAmount.IsNegative())
		s.Equal(domain.StatusFor(cur.OutstandingAmount, cur.TotalAmount), cur.Status)
		prev = cur.OutstandingAmount
	}

	final := s.reload(inv.InvoiceID)
	s.Equal(domain.Paid, final.Status)
	assertDecimal(s.T(), "0", final.OutstandingAmount)

	for _, e := range s.entries() {
		s.True(e.TotalDebits().Equal(e.TotalCredits()), e.Description)
	}
}

func (s *LedgerServiceTestSuite) TestConcurrentPaymentsAreSerialised() {
	inv := s.createInvoice("INV-100", "100.00", "0.15")

	const workers = 23 // 23 * 5.00 = 115.00
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.pay(inv.InvoiceID, "5.00")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	final := s.reload(inv.InvoiceID)
	s.Equal(domain.Paid, final.Status)
	assertDecimal(s.T(), "0", final.OutstandingAmount)
	s.Equal(int64(1+workers), final.Version)

	payments, err := s.svc.ListPaymentsForInvoice(s.ctx, inv.InvoiceID)
	s.Require().NoError(err)
	s.Len(payments, workers)
}

func (s *LedgerServiceTestSuite) TestConcurrentOverpaymentsOnlyOneWins() {
	inv := s.createInvoice("INV-101", "100.00", "0.15")

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.pay(inv.InvoiceID, "60.00")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			s.ErrorIs(err, apperrors.ErrOverpayment)
			rejected++
		}
	}
	s.Equal(1, ok)
	s.Equal(2, rejected)
	assertDecimal(s.T(), "55.00", s.reload(inv.InvoiceID).OutstandingAmount)
}

func (s *LedgerServiceTestSuite) TestQueries_NotFound() {
	_, err := s.svc.FindInvoice(s.ctx, "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.ListPaymentsForInvoice(s.ctx, "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.GetJournalEntry(s.ctx, "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestListInvoices_CreationOrder() {
	s.createInvoice("B", "1.00", "0")
	s.createInvoice("A", "2.00", "0")
	s.createInvoice("C", "3.00", "0")

	invoices, err := s.svc.ListInvoices(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(invoices, 3)
	s.Equal([]string{"B", "A", "C"}, []string{invoices[0].InvoiceNumber, invoices[1].InvoiceNumber, invoices[2].InvoiceNumber})
}

func TestLedgerService_MissingAccountIsConfigurationError(t *testing.T) {
	ctx := context.Background()
	chart := domain.DefaultChartOfAccounts()
	withoutVAT := []domain.Account{chart[0], chart[1], chart[3]}
	store := memory.New(withoutVAT)
	svc := services.NewLedgerService(store, services.NewAccountDirectory(store), lock.NewLocalLocker(time.Second))

	_, err := svc.CreateInvoice(ctx, portssvc.CreateInvoiceInput{InvoiceNumber: "INV-1", Subtotal: dec("10"), TaxRate: dec("0.1")})
	var cfgErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "VAT", cfgErr.AccountCode)
	assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))

	invoices, err := store.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestLedgerService_CustomPostingAccounts(t *testing.T) {
	ctx := context.Background()
	chart := append(domain.DefaultChartOfAccounts(), domain.Account{AccountID: "bank-id", Code: "BANK", Name: "Bank", AccountType: domain.Asset})
	store := memory.New(chart)
	posting := domain.DefaultPostingAccounts()
	posting.Cash = "BANK"
	svc := services.NewLedgerService(store, services.NewStaticAccountDirectory(chart), lock.NewLocalLocker(time.Second), services.WithPostingAccounts(posting))

	inv, err := svc.CreateInvoice(ctx, portssvc.CreateInvoiceInput{InvoiceNumber: "INV-1", Subtotal: dec("10"), TaxRate: dec("0")})
	require.NoError(t, err)
	_, err = svc.ApplyPayment(ctx, portssvc.ApplyPaymentInput{InvoiceID: inv.InvoiceID, Amount: dec("10")})
	require.NoError(t, err)

	entries, err := svc.ListJournalEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "BANK", entries[1].Lines[0].AccountCode)
}

// faultyStore fails a chosen LedgerTx call after the earlier writes of the unit succeeded.
type faultyStore struct {
	*memory.Store
	failOn string
	err    error
}

func (f *faultyStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return f.Store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return fn(ctx, &faultyTx{LedgerTx: tx, failOn: f.failOn, err: f.err})
	})
}

type faultyTx struct {
	portsrepo.LedgerTx
	failOn string
	err    error
}

func (t *faultyTx) UpdateInvoiceBalance(ctx context.Context, inv domain.Invoice, expectedVersion int64) error {
	if t.failOn == "UpdateInvoiceBalance" {
		return t.err
	}
	return t.LedgerTx.UpdateInvoiceBalance(ctx, inv, expectedVersion)
}

func (t *faultyTx) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	if t.failOn == "InsertJournalEntry" {
		return t.err
	}
	return t.LedgerTx.InsertJournalEntry(ctx, entry)
}

func TestLedgerService_PartialWritesAreRolledBack(t *testing.T) {
	ctx := context.Background()
	chart := domain.DefaultChartOfAccounts()
	base := memory.New(chart)
	good := services.NewLedgerService(base, services.NewStaticAccountDirectory(chart), lock.NewLocalLocker(time.Second))
	inv, err := good.CreateInvoice(ctx, portssvc.CreateInvoiceInput{InvoiceNumber: "INV-1", Subtotal: dec("100"), TaxRate: dec("0.15")})
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	faulty := &faultyStore{Store: base, failOn: "InsertJournalEntry", err: diskFull}
	svc := services.NewLedgerService(faulty, services.NewStaticAccountDirectory(chart), lock.NewLocalLocker(time.Second))

	_, err = svc.CreateInvoice(ctx, portssvc.CreateInvoiceInput{InvoiceNumber: "INV-2", Subtotal: dec("10"), TaxRate: dec("0")})
	assert.ErrorIs(t, err, diskFull)
	_, err = base.FindInvoiceByNumber(ctx, "INV-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.ApplyPayment(ctx, portssvc.ApplyPaymentInput{InvoiceID: inv.InvoiceID, Amount: dec("15")})
	assert.ErrorIs(t, err, diskFull)

	reloaded, err := base.FindInvoiceByID(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assertDecimal(t, "115", reloaded.OutstandingAmount)
	payments, err := base.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
	entries, err := base.ListJournalEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLedgerService_VersionConflictSurfaces(t *testing.T) {
	ctx := context.Background()
	chart := domain.DefaultChartOfAccounts()
	base := memory.New(chart)
	conflict := &apperrors.ConcurrentModificationError{InvoiceID: "x", Reason: "expected version 1, found 2"}
	store := &faultyStore{Store: base, failOn: "UpdateInvoiceBalance", err: conflict}
	svc := services.NewLedgerService(store, services.NewStaticAccountDirectory(chart), lock.NewLocalLocker(time.Second))

	inv, err := svc.CreateInvoice(ctx, portssvc.CreateInvoiceInput{InvoiceNumber: "INV-1", Subtotal: dec("10"), TaxRate: dec("0")})
	require.NoError(t, err)

	_, err = svc.ApplyPayment(ctx, portssvc.ApplyPaymentInput{InvoiceID: inv.InvoiceID, Amount: dec("5")})
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
	assert.Equal(t, apperrors.KindConcurrentModification, apperrors.KindOf(err))

	payments, err := base.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}
