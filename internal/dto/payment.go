package dto

import (
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// ProcessPaymentRequest defines the data needed to apply a payment to an invoice.
type ProcessPaymentRequest struct {
	InvoiceID            string           `json:"invoiceId" binding:"required"`
	PaymentAmount        *decimal.Decimal `json:"paymentAmount" binding:"required"`
	PaymentMethod        string           `json:"paymentMethod" binding:"max=64"`
	PaymentDate          *string          `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	TransactionReference string           `json:"transactionReference" binding:"max=255"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID            string    `json:"paymentID"`
	InvoiceID            string    `json:"invoiceID"`
	InvoiceNumber        string    `json:"invoiceNumber"`
	Amount               string    `json:"amount"`
	PaymentDate          string    `json:"paymentDate"`
	PaymentMethod        string    `json:"paymentMethod"`
	TransactionReference string    `json:"transactionReference"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:            p.PaymentID,
		InvoiceID:            p.InvoiceID,
		InvoiceNumber:        p.InvoiceNumber,
		Amount:               utils.FormatAmount(p.Amount),
		PaymentDate:          p.PaymentDate.Format(DateLayout),
		PaymentMethod:        p.PaymentMethod,
		TransactionReference: p.TransactionReference,
		CreatedAt:            p.CreatedAt,
	}
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	InvoiceID string `form:"invoiceId"`
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to ListPaymentsResponse
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	res := ListPaymentsResponse{Payments: make([]PaymentResponse, len(payments))}
	for i := range payments {
		res.Payments[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
