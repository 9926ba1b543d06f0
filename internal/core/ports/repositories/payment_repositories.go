package repositories

import (
	"context"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPaymentsByInvoiceID returns the payments applied to one invoice in creation order.
	ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// ListPayments returns every payment in creation order.
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}
