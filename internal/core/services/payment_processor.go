package services

import (
	"strings"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// settle applies amount to the invoice and returns the updated copy. The checks run
// in a fixed order: a PAID invoice is rejected before the amount is looked at.
func settle(invoice domain.Invoice, amount decimal.Decimal, now time.Time) (domain.Invoice, error) {
	if invoice.IsPaid() {
		return invoice, &apperrors.AlreadyPaidError{InvoiceNumber: invoice.InvoiceNumber}
	}
	if !amount.IsPositive() {
		return invoice, &apperrors.InvalidAmountError{Amount: amount}
	}
	if !accounting.HasAmountScale(amount) {
		return invoice, apperrors.NewValidationError("paymentAmount", "must have at most 2 decimal places")
	}
	if amount.GreaterThan(invoice.OutstandingAmount) {
		return invoice, &apperrors.OverpaymentError{
			InvoiceNumber: invoice.InvoiceNumber,
			Amount:        amount,
			Outstanding:   invoice.OutstandingAmount,
		}
	}

	updated := invoice
	updated.OutstandingAmount = invoice.OutstandingAmount.Sub(amount)
	updated.Status = domain.StatusFor(updated.OutstandingAmount, updated.TotalAmount)
	updated.Version = invoice.Version + 1
	updated.LastUpdatedAt = now
	return updated, nil
}

// validatePaymentText bounds the optional free-text fields after trimming.
func validatePaymentText(input portssvc.ApplyPaymentInput) error {
	if err := checkLength("paymentMethod", strings.TrimSpace(input.PaymentMethod), domain.MaxPaymentMethodLength); err != nil {
		return err
	}
	return checkLength("transactionReference", strings.TrimSpace(input.TransactionReference), domain.MaxTransactionReferenceLength)
}

// recordPayment builds the payment and its cash receipt entry:
// debit cash and credit receivable for the same amount.
func recordPayment(invoice domain.Invoice, input portssvc.ApplyPaymentInput, cash, receivable domain.Account, now time.Time, newID func() string) (domain.Payment, domain.JournalEntry) {
	paymentDate := domain.DateOnly(now)
	if !input.PaymentDate.IsZero() {
		paymentDate = domain.DateOnly(input.PaymentDate)
	}

	payment := domain.Payment{
		PaymentID:            newID(),
		InvoiceID:            invoice.InvoiceID,
		InvoiceNumber:        invoice.InvoiceNumber,
		Amount:               input.Amount,
		PaymentDate:          paymentDate,
		PaymentMethod:        strings.TrimSpace(input.PaymentMethod),
		TransactionReference: strings.TrimSpace(input.TransactionReference),
		CreatedAt:            now,
	}

	entry := newJournalEntry(newID(), paymentDate, "Payment for Invoice: "+invoice.InvoiceNumber, now)
	entry.Lines = []domain.JournalLine{
		debitLine(newID(), entry.JournalEntryID, 1, cash, input.Amount),
		creditLine(newID(), entry.JournalEntryID, 2, receivable, input.Amount),
	}
	return payment, entry
}
