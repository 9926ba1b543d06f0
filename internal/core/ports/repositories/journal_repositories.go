package repositories

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves one entry with its lines in line order.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns every entry, with lines, in creation order.
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
