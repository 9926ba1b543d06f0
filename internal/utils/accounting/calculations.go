package accounting

import (
	"fmt"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount nets a line's debit and credit by the account's normal side.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account %s", accountType, line.AccountCode)
	}
}

// ValidateJournalBalance checks that the debit and credit columns of lines are equal.
// Totals are compared with exact decimal equality; there is no tolerance.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	debits, credits := decimal.Zero, decimal.Zero

	if len(lines) < 2 {
		return &apperrors.ImbalanceError{Debits: debits, Credits: credits, Detail: "journal must have at least two lines"}
	}

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return &apperrors.ImbalanceError{Detail: fmt.Sprintf("line %d on account %s has a negative amount", i+1, line.AccountCode)}
		}
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return &apperrors.ImbalanceError{Detail: fmt.Sprintf("line %d on account %s has both debit and credit set", i+1, line.AccountCode)}
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		return &apperrors.ImbalanceError{Debits: debits, Credits: credits}
	}

	return nil
}
