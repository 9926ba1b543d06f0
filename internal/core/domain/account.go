package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Default chart-of-accounts codes used by the posting pattern.
const (
	CodeReceivable = "AR"
	CodeRevenue    = "REV"
	CodeTaxPayable = "VAT"
	CodeCash       = "CASH"
)

// Account represents a chart-of-accounts entry. Accounts are set up once and
// referenced, never owned, by journal lines.
type Account struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
}

// PostingAccounts names the account codes used for invoice and payment entries.
type PostingAccounts struct {
	Receivable string
	Revenue    string
	TaxPayable string
	Cash       string
}

// DefaultPostingAccounts returns the AR/REV/VAT/CASH posting pattern.
func DefaultPostingAccounts() PostingAccounts {
	return PostingAccounts{
		Receivable: CodeReceivable,
		Revenue:    CodeRevenue,
		TaxPayable: CodeTaxPayable,
		Cash:       CodeCash,
	}
}

// DefaultChartOfAccounts is the seed chart matching DefaultPostingAccounts.
// The IDs match the seed migration.
func DefaultChartOfAccounts() []Account {
	return []Account{
		{AccountID: "00000000-0000-0000-0000-000000000001", Code: CodeReceivable, Name: "Accounts Receivable", AccountType: Asset},
		{AccountID: "00000000-0000-0000-0000-000000000002", Code: CodeRevenue, Name: "Sales Revenue", AccountType: Revenue},
		{AccountID: "00000000-0000-0000-0000-000000000003", Code: CodeTaxPayable, Name: "VAT Payable", AccountType: Liability},
		{AccountID: "00000000-0000-0000-0000-000000000004", Code: CodeCash, Name: "Cash", AccountType: Asset},
	}
}
