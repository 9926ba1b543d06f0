package dto

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/utils"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  string `json:"debit"`
		Credit string `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	res := TrialBalanceResponse{Rows: make([]TrialBalanceRowResponse, len(tb.Rows))}
	for i, row := range tb.Rows {
		res.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       utils.FormatAmount(row.Debit),
			Credit:      utils.FormatAmount(row.Credit),
			Balance:     utils.FormatAmount(row.Balance),
		}
	}
	res.Totals.Debit = utils.FormatAmount(tb.TotalDebits)
	res.Totals.Credit = utils.FormatAmount(tb.TotalCredits)
	return res
}

// IntegrityReportResponse represents the ledger integrity check result
type IntegrityReportResponse struct {
	OK                    bool                    `json:"ok"`
	JournalEntriesChecked int                     `json:"journalEntriesChecked"`
	InvoicesChecked       int                     `json:"invoicesChecked"`
	Issues                []domain.IntegrityIssue `json:"issues"`
}

// ToIntegrityReportResponse converts a domain.IntegrityReport to its response DTO
func ToIntegrityReportResponse(r *domain.IntegrityReport) IntegrityReportResponse {
	issues := r.Issues
	if issues == nil {
		issues = []domain.IntegrityIssue{}
	}
	return IntegrityReportResponse{
		OK:                    r.OK(),
		JournalEntriesChecked: r.JournalEntriesChecked,
		InvoicesChecked:       r.InvoicesChecked,
		Issues:                issues,
	}
}
