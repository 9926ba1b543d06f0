package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		InvoiceNumber:     d.InvoiceNumber,
		InvoiceDate:       d.InvoiceDate,
		Subtotal:          d.Subtotal,
		TaxRate:           d.TaxRate,
		TaxAmount:         d.TaxAmount,
		TotalAmount:       d.TotalAmount,
		OutstandingAmount: d.OutstandingAmount,
		Status:            string(d.Status),
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice. Dates come back as UTC midnight.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		InvoiceNumber:     m.InvoiceNumber,
		InvoiceDate:       domain.DateOnly(m.InvoiceDate),
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		TotalAmount:       m.TotalAmount,
		OutstandingAmount: m.OutstandingAmount,
		Status:            domain.InvoiceStatus(m.Status),
		Version:           m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
