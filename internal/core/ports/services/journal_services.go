package services

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// JournalReaderSvc defines read operations for committed journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves one entry with its lines.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns every committed entry in creation order.
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
}
