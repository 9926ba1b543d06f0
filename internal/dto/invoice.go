package dto

import (
	"time"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the request and response format for calendar dates.
const DateLayout = "2006-01-02"

// CreateInvoiceRequest defines the data needed to issue an invoice.
// Amounts may be sent as JSON strings or numbers.
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoiceNumber" binding:"required,max=64"`
	Subtotal      *decimal.Decimal `json:"subtotal" binding:"required,decimal_gt=0"`
	TaxRate       *decimal.Decimal `json:"taxRate" binding:"required,decimal_gte=0,decimal_lte=1"`
	InvoiceDate   *string          `json:"invoiceDate" binding:"omitempty,datetime=2006-01-02"` // Optional, defaults to today
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID         string    `json:"invoiceID"`
	InvoiceNumber     string    `json:"invoiceNumber"`
	InvoiceDate       string    `json:"invoiceDate"`
	Subtotal          string    `json:"subtotal"`
	TaxRate           string    `json:"taxRate"`
	TaxAmount         string    `json:"taxAmount"`
	TotalAmount       string    `json:"totalAmount"`
	OutstandingAmount string    `json:"outstandingAmount"`
	Status            string    `json:"status"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		InvoiceNumber:     inv.InvoiceNumber,
		InvoiceDate:       inv.InvoiceDate.Format(DateLayout),
		Subtotal:          utils.FormatAmount(inv.Subtotal),
		TaxRate:           inv.TaxRate.String(),
		TaxAmount:         utils.FormatAmount(inv.TaxAmount),
		TotalAmount:       utils.FormatAmount(inv.TotalAmount),
		OutstandingAmount: utils.FormatAmount(inv.OutstandingAmount),
		Status:            string(inv.Status),
		Version:           inv.Version,
		CreatedAt:         inv.CreatedAt,
		LastUpdatedAt:     inv.LastUpdatedAt,
	}
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToListInvoicesResponse converts a slice of domain.Invoice to ListInvoicesResponse
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := ListInvoicesResponse{Invoices: make([]InvoiceResponse, len(invoices))}
	for i := range invoices {
		res.Invoices[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

// ParseDate parses an optional YYYY-MM-DD value. Nil or empty yields the zero time.
func ParseDate(value *string) (time.Time, error) {
	if value == nil || *value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, *value)
}
