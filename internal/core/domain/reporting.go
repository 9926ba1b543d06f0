package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // signed by the account's normal side
}

// TrialBalance is the full report with column totals.
type TrialBalance struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// IntegrityIssue describes one ledger inconsistency found by the integrity check.
type IntegrityIssue struct {
	Subject string `json:"subject"` // e.g. "journal_entry" or "invoice"
	ID      string `json:"id"`
	Problem string `json:"problem"`
}

// IntegrityReport is the result of a full ledger scan.
type IntegrityReport struct {
	JournalEntriesChecked int              `json:"journalEntriesChecked"`
	InvoicesChecked       int              `json:"invoicesChecked"`
	Issues                []IntegrityIssue `json:"issues"`
}

// OK reports whether the scan found no inconsistencies.
func (r *IntegrityReport) OK() bool {
	return len(r.Issues) == 0
}
