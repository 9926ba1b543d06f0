package dto

import (
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/utils"
)

// JournalLineResponse is one debit or credit posting.
type JournalLineResponse struct {
	LineNo      int    `json:"lineNo"`
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// JournalEntryResponse is a committed journal entry with its lines.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	EntryDate      string                `json:"entryDate"`
	Description    string                `json:"description"`
	CreatedAt      time.Time             `json:"createdAt"`
	Lines          []JournalLineResponse `json:"lines"`
}

// ListJournalEntriesResponse wraps a list of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	res := JournalEntryResponse{
		JournalEntryID: entry.JournalEntryID,
		EntryDate:      entry.EntryDate.Format(DateLayout),
		Description:    entry.Description,
		CreatedAt:      entry.CreatedAt,
		Lines:          make([]JournalLineResponse, len(entry.Lines)),
	}
	for i, l := range entry.Lines {
		res.Lines[i] = JournalLineResponse{
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       utils.FormatAmount(l.Debit),
			Credit:      utils.FormatAmount(l.Credit),
		}
	}
	return res
}

// ToListJournalEntriesResponse converts a slice of domain.JournalEntry to ListJournalEntriesResponse
func ToListJournalEntriesResponse(entries []domain.JournalEntry) ListJournalEntriesResponse {
	res := ListJournalEntriesResponse{JournalEntries: make([]JournalEntryResponse, len(entries))}
	for i := range entries {
		res.JournalEntries[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
