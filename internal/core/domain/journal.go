package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a balanced accounting record. Entries are never edited in place.
type JournalEntry struct {
	JournalEntryID string        `json:"journalEntryID"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	Lines          []JournalLine `json:"lines"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// JournalLine posts a debit or a credit to one account. Owned by its entry.
type JournalLine struct {
	LineID         string          `json:"lineID"`
	JournalEntryID string          `json:"journalEntryID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// TotalDebits sums the debit column.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit column.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
