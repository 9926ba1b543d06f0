package mapping

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
)

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:            m.PaymentID,
		InvoiceID:            m.InvoiceID,
		InvoiceNumber:        m.InvoiceNumber,
		Amount:               m.Amount,
		PaymentDate:          domain.DateOnly(m.PaymentDate),
		PaymentMethod:        m.PaymentMethod,
		TransactionReference: m.TransactionReference,
		CreatedAt:            m.CreatedAt,
	}
}
