package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(1)

// validateInvoiceInput checks the caller's input and returns the trimmed invoice number.
func validateInvoiceInput(input portssvc.CreateInvoiceInput) (string, error) {
	number := strings.TrimSpace(input.InvoiceNumber)
	if number == "" {
		return "", apperrors.NewValidationError("invoiceNumber", "must not be blank")
	}
	if err := checkLength("invoiceNumber", number, domain.MaxInvoiceNumberLength); err != nil {
		return "", err
	}
	if !input.Subtotal.IsPositive() {
		return "", apperrors.NewValidationError("subtotal", "must be greater than zero")
	}
	if !accounting.HasAmountScale(input.Subtotal) {
		return "", apperrors.NewValidationError("subtotal", "must have at most 2 decimal places")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(maxTaxRate) {
		return "", apperrors.NewValidationError("taxRate", "must be between 0 and 1")
	}
	return number, nil
}

func checkLength(field, value string, maxLen int) error {
	if utf8.RuneCountInString(value) > maxLen {
		return apperrors.NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}

// issueInvoice derives the invoice amounts and the receivable entry that records it:
// debit receivable for the total, credit revenue for the subtotal and tax payable for the tax.
func issueInvoice(number string, input portssvc.CreateInvoiceInput, receivable, revenue, taxPayable domain.Account, now time.Time, newID func() string) (domain.Invoice, domain.JournalEntry) {
	taxAmount := accounting.CalculateTax(input.Subtotal, input.TaxRate)
	total := accounting.CalculateTotal(input.Subtotal, taxAmount)

	invoiceDate := domain.DateOnly(now)
	if !input.InvoiceDate.IsZero() {
		invoiceDate = domain.DateOnly(input.InvoiceDate)
	}

	invoice := domain.Invoice{
		InvoiceID:         newID(),
		InvoiceNumber:     number,
		InvoiceDate:       invoiceDate,
		Subtotal:          input.Subtotal,
		TaxRate:           input.TaxRate,
		TaxAmount:         taxAmount,
		TotalAmount:       total,
		OutstandingAmount: total,
		Status:            domain.Unpaid,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	entry := newJournalEntry(newID(), invoiceDate, "Invoice: "+number, now)
	entry.Lines = []domain.JournalLine{
		debitLine(newID(), entry.JournalEntryID, 1, receivable, total),
		creditLine(newID(), entry.JournalEntryID, 2, revenue, input.Subtotal),
		creditLine(newID(), entry.JournalEntryID, 3, taxPayable, taxAmount),
	}
	return invoice, entry
}

func newJournalEntry(id string, date time.Time, description string, now time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: id,
		EntryDate:      date,
		Description:    description,
		CreatedAt:      now,
	}
}

func debitLine(id, entryID string, lineNo int, acc domain.Account, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{
		LineID:         id,
		JournalEntryID: entryID,
		LineNo:         lineNo,
		AccountID:      acc.AccountID,
		AccountCode:    acc.Code,
		Debit:          amount,
		Credit:         decimal.Zero,
	}
}

func creditLine(id, entryID string, lineNo int, acc domain.Account, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{
		LineID:         id,
		JournalEntryID: entryID,
		LineNo:         lineNo,
		AccountID:      acc.AccountID,
		AccountCode:    acc.Code,
		Debit:          decimal.Zero,
		Credit:         amount,
	}
}
