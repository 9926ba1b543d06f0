package accounting

import (
	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept on every stored amount.
const AmountScale int32 = 2

// RoundAmount rounds d to AmountScale using round-half-to-even (banker's rounding).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(AmountScale)
}

// CalculateTax returns subtotal*rate rounded once to AmountScale.
// The product is exact, so the only rounding step is the final half-even one.
func CalculateTax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return RoundAmount(subtotal.Mul(rate))
}

// CalculateTotal returns subtotal + tax.
func CalculateTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Compare is a three-way comparison: -1 if a < b, 0 if equal, +1 if a > b.
func Compare(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

// HasAmountScale reports whether d needs no more than AmountScale fractional digits.
func HasAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// IsPositive reports d > 0.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}
