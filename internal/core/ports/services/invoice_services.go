package services

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput carries everything needed to issue an invoice.
type CreateInvoiceInput struct {
	InvoiceNumber string
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	// InvoiceDate defaults to today when zero.
	InvoiceDate time.Time
}

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// FindInvoice retrieves an invoice by its invoice number.
	FindInvoice(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)

	// GetInvoice retrieves an invoice by its identifier.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns a snapshot of all invoices in creation order.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice issues an invoice and records its receivable in the journal atomically.
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
