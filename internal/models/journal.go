package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id"`
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	CreatedAt      time.Time `db:"created_at"`
}

// JournalLine is the journal_lines table row joined with its account code.
type JournalLine struct {
	LineID         string          `db:"line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	LineNo         int             `db:"line_no"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
}
