package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from an invoice's outstanding balance.
type InvoiceStatus string

const (
	Unpaid        InvoiceStatus = "UNPAID"
	PartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	Paid          InvoiceStatus = "PAID"
)

// MaxInvoiceNumberLength is the longest invoice number, in characters, the ledger stores.
const MaxInvoiceNumberLength = 64

// StatusFor derives the status from outstanding against total:
// zero outstanding is PAID, anything below total is PARTIALLY_PAID, otherwise UNPAID.
func StatusFor(outstanding, total decimal.Decimal) InvoiceStatus {
	switch {
	case outstanding.IsZero():
		return Paid
	case outstanding.LessThan(total):
		return PartiallyPaid
	default:
		return Unpaid
	}
}

// Invoice is an issued invoice and its receivable balance.
// Only payment application mutates it, and only OutstandingAmount, Status and Version.
type Invoice struct {
	InvoiceID         string          `json:"invoiceID"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	InvoiceDate       time.Time       `json:"invoiceDate"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            InvoiceStatus   `json:"status"`
	Version           int64           `json:"version"` // optimistic revision, bumped on every payment
	AuditFields
}

// IsPaid reports whether the invoice has nothing left to collect.
func (i *Invoice) IsPaid() bool {
	return i.Status == Paid
}
