package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
)

func TestInvoiceMapping(t *testing.T) {
	created := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	inv := domain.Invoice{
		InvoiceID:         "11111111-1111-1111-1111-111111111111",
		InvoiceNumber:     "INV-001",
		InvoiceDate:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Subtotal:          decimal.RequireFromString("100.00"),
		TaxRate:           decimal.RequireFromString("0.15"),
		TaxAmount:         decimal.RequireFromString("15.00"),
		TotalAmount:       decimal.RequireFromString("115.00"),
		OutstandingAmount: decimal.RequireFromString("65.00"),
		Status:            domain.PartiallyPaid,
		Version:           2,
		AuditFields:       domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
	}

	m := mapping.ToModelInvoice(inv)
	assert.Equal(t, "PARTIALLY_PAID", m.Status)
	assert.Equal(t, int64(2), m.Version)

	back := mapping.ToDomainInvoice(m)
	assert.Equal(t, inv, back)
}

func TestJournalEntryMapping(t *testing.T) {
	m := models.JournalEntry{
		JournalEntryID: "e1",
		EntryDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:    "Invoice: INV-001",
	}
	lines := []models.JournalLine{
		{LineID: "l1", JournalEntryID: "e1", LineNo: 1, AccountID: "a1", AccountCode: "AR", Debit: decimal.RequireFromString("115.00"), Credit: decimal.Zero},
		{LineID: "l2", JournalEntryID: "e1", LineNo: 2, AccountID: "a2", AccountCode: "REV", Debit: decimal.Zero, Credit: decimal.RequireFromString("115.00")},
	}

	entry := mapping.ToDomainJournalEntry(m, lines)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "AR", entry.Lines[0].AccountCode)
	assert.Equal(t, 2, entry.Lines[1].LineNo)
	assert.True(t, entry.TotalDebits().Equal(entry.TotalCredits()))

	empty := mapping.ToDomainJournalEntry(m, nil)
	assert.NotNil(t, empty.Lines)
	assert.Empty(t, empty.Lines)
}
