package services

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentInput carries a payment to settle against an invoice.
type ApplyPaymentInput struct {
	InvoiceID string
	Amount    decimal.Decimal
	// PaymentDate defaults to today when zero.
	PaymentDate          time.Time
	PaymentMethod        string
	TransactionReference string
}

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// ListPaymentsForInvoice returns the payments applied to one invoice.
	ListPaymentsForInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// ListAllPayments returns every payment in creation order.
	ListAllPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// ApplyPayment settles part or all of an invoice's outstanding balance.
	ApplyPayment(ctx context.Context, input ApplyPaymentInput) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
