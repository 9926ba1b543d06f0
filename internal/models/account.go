package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is the accounts table row.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
}
