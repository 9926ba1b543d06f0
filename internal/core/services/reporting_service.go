package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	invoiceRepo portsrepo.InvoiceReader
	paymentRepo portsrepo.PaymentReader
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
	posting     domain.PostingAccounts
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingPostingAccounts sets which account is reconciled against open invoices.
func WithReportingPostingAccounts(posting domain.PostingAccounts) ReportingServiceOption {
	return func(s *reportingService) {
		s.posting = posting
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo: repos.AccountRepo,
		invoiceRepo: repos.InvoiceRepo,
		paymentRepo: repos.PaymentRepo,
		journalRepo: repos.JournalRepo,
		txManager:   repos.TxManager,
		posting:     domain.DefaultPostingAccounts(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance totals every account's debits and credits across all committed entries.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	var (
		accounts []domain.Account
		entries  []domain.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		accounts, err = s.accountRepo.ListAccounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		entries, err = s.journalRepo.ListJournalEntries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load ledger for trial balance")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	tb, err := buildTrialBalance(accounts, entries)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance")
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.Int("row_count", len(tb.Rows)),
		slog.Int("entry_count", len(entries)))
	return tb, nil
}

// buildTrialBalance aggregates lines per account. Accounts without activity get a zero row.
func buildTrialBalance(accounts []domain.Account, entries []domain.JournalEntry) (*domain.TrialBalance, error) {
	rows := make(map[string]*domain.TrialBalanceRow, len(accounts))
	for _, acc := range accounts {
		rows[acc.AccountID] = &domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Balance:     decimal.Zero,
		}
	}

	tb := &domain.TrialBalance{TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			row, ok := rows[line.AccountID]
			if !ok {
				return nil, fmt.Errorf("journal entry %s references unknown account %s", entry.JournalEntryID, line.AccountID)
			}
			row.Debit = row.Debit.Add(line.Debit)
			row.Credit = row.Credit.Add(line.Credit)
			tb.TotalDebits = tb.TotalDebits.Add(line.Debit)
			tb.TotalCredits = tb.TotalCredits.Add(line.Credit)
		}
	}

	tb.Rows = make([]domain.TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		balance, err := accounting.CalculateSignedAmount(domain.JournalLine{Debit: row.Debit, Credit: row.Credit}, row.AccountType)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", row.AccountCode, err)
		}
		row.Balance = balance
		tb.Rows = append(tb.Rows, *row)
	}
	slices.SortFunc(tb.Rows, func(a, b domain.TrialBalanceRow) int { return strings.Compare(a.AccountCode, b.AccountCode) })
	return tb, nil
}

// CheckIntegrity rescans the ledger and reports every inconsistency it finds. It only
// returns an error when the data cannot be loaded. All reads come from one snapshot.
func (s *reportingService) CheckIntegrity(ctx context.Context) (*domain.IntegrityReport, error) {
	var (
		accounts []domain.Account
		entries  []domain.JournalEntry
		invoices []domain.Invoice
		payments []domain.Payment
	)
	err := s.txManager.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) (err error) {
		if accounts, err = snap.ListAccounts(ctx); err != nil {
			return err
		}
		if entries, err = snap.ListJournalEntries(ctx); err != nil {
			return err
		}
		if invoices, err = snap.ListInvoices(ctx); err != nil {
			return err
		}
		payments, err = snap.ListPayments(ctx)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for integrity check")
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	report := &domain.IntegrityReport{
		JournalEntriesChecked: len(entries),
		InvoicesChecked:       len(invoices),
		Issues:                []domain.IntegrityIssue{},
	}
	addIssue := func(subject, id, format string, args ...any) {
		report.Issues = append(report.Issues, domain.IntegrityIssue{Subject: subject, ID: id, Problem: fmt.Sprintf(format, args...)})
	}

	known := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		known[acc.AccountID] = acc
	}
	for _, entry := range entries {
		if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
			addIssue("journal_entry", entry.JournalEntryID, "%s", err.Error())
		}
		for _, line := range entry.Lines {
			if _, ok := known[line.AccountID]; !ok {
				addIssue("journal_entry", entry.JournalEntryID, "line %d references unknown account %s", line.LineNo, line.AccountID)
			}
		}
	}

	paid := make(map[string]decimal.Decimal, len(invoices))
	byID := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		byID[inv.InvoiceID] = struct{}{}
	}
	for _, p := range payments {
		if _, ok := byID[p.InvoiceID]; !ok {
			addIssue("payment", p.PaymentID, "references unknown invoice %s", p.InvoiceID)
			continue
		}
		paid[p.InvoiceID] = paid[p.InvoiceID].Add(p.Amount)
	}

	openBalance := decimal.Zero
	for _, inv := range invoices {
		if !inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)) {
			addIssue("invoice", inv.InvoiceID, "total %s != subtotal %s + tax %s", inv.TotalAmount, inv.Subtotal, inv.TaxAmount)
		}
		if inv.OutstandingAmount.IsNegative() || inv.OutstandingAmount.GreaterThan(inv.TotalAmount) {
			addIssue("invoice", inv.InvoiceID, "outstanding %s outside [0, %s]", inv.OutstandingAmount, inv.TotalAmount)
		}
		expected := inv.TotalAmount.Sub(paid[inv.InvoiceID])
		if !inv.OutstandingAmount.Equal(expected) {
			addIssue("invoice", inv.InvoiceID, "outstanding %s != total minus payments %s", inv.OutstandingAmount, expected)
		}
		if want := domain.StatusFor(inv.OutstandingAmount, inv.TotalAmount); inv.Status != want {
			addIssue("invoice", inv.InvoiceID, "status %s, expected %s", inv.Status, want)
		}
		openBalance = openBalance.Add(inv.OutstandingAmount)
	}

	tb, err := buildTrialBalance(accounts, entries)
	if err != nil {
		addIssue("ledger", "", "%s", err.Error())
	} else {
		if !tb.TotalDebits.Equal(tb.TotalCredits) {
			addIssue("ledger", "", "total debits %s != total credits %s", tb.TotalDebits, tb.TotalCredits)
		}
		for _, row := range tb.Rows {
			if row.AccountCode == s.posting.Receivable && !row.Balance.Equal(openBalance) {
				addIssue("account", row.AccountID, "receivable balance %s != open invoice balance %s", row.Balance, openBalance)
			}
		}
	}

	if report.OK() {
		s.LogInfo(ctx, "Ledger integrity check passed",
			slog.Int("journal_entries", report.JournalEntriesChecked),
			slog.Int("invoices", report.InvoicesChecked))
	} else {
		s.GetLogger(ctx).Warn("Ledger integrity check found issues",
			slog.Int("issue_count", len(report.Issues)),
			slog.Int("journal_entries", report.JournalEntriesChecked),
			slog.Int("invoices", report.InvoicesChecked))
	}
	return report, nil
}
