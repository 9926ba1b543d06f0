package utils

import (
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a stored amount with exactly two fractional digits.
// Example: 115 returns "115.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixedBank(accounting.AmountScale)
}
