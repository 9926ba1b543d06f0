package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToDomainJournalEntry assembles a domain entry from its header row and line rows
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		EntryDate:      domain.DateOnly(m.EntryDate),
		Description:    m.Description,
		CreatedAt:      m.CreatedAt,
		Lines:          make([]domain.JournalLine, 0, len(lines)),
	}
	for _, l := range lines {
		entry.Lines = append(entry.Lines, domain.JournalLine{
			LineID:         l.LineID,
			JournalEntryID: l.JournalEntryID,
			LineNo:         l.LineNo,
			AccountID:      l.AccountID,
			AccountCode:    l.AccountCode,
			Debit:          l.Debit,
			Credit:         l.Credit,
		})
	}
	return entry
}
