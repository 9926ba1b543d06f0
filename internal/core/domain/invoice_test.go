package domain_test

import (
	"testing"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	total := decimal.RequireFromString("115.00")

	tests := []struct {
		name        string
		outstanding decimal.Decimal
		want        domain.InvoiceStatus
	}{
		{name: "nothing paid", outstanding: total, want: domain.Unpaid},
		{name: "partially paid", outstanding: decimal.RequireFromString("65.00"), want: domain.PartiallyPaid},
		{name: "one cent left", outstanding: decimal.RequireFromString("0.01"), want: domain.PartiallyPaid},
		{name: "fully paid", outstanding: decimal.RequireFromString("0.00"), want: domain.Paid},
		{name: "zero with other scale", outstanding: decimal.Zero, want: domain.Paid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusFor(tt.outstanding, total))
		})
	}
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{AccountCode: "AR", Debit: decimal.RequireFromString("115.00"), Credit: decimal.Zero},
			{AccountCode: "REV", Debit: decimal.Zero, Credit: decimal.RequireFromString("100.00")},
			{AccountCode: "VAT", Debit: decimal.Zero, Credit: decimal.RequireFromString("15.00")},
		},
	}

	assert.True(t, entry.TotalDebits().Equal(decimal.RequireFromString("115")))
	assert.True(t, entry.TotalCredits().Equal(decimal.RequireFromString("115")))
}

func TestAccountType_Valid(t *testing.T) {
	assert.True(t, domain.Asset.Valid())
	assert.True(t, domain.Revenue.Valid())
	assert.False(t, domain.AccountType("INCOME").Valid())
}
