package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID         string          `db:"invoice_id"`
	InvoiceNumber     string          `db:"invoice_number"`
	InvoiceDate       time.Time       `db:"invoice_date"`
	Subtotal          decimal.Decimal `db:"subtotal"`
	TaxRate           decimal.Decimal `db:"tax_rate"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	Status            string          `db:"status"`
	Version           int64           `db:"version"`
	CreatedAt         time.Time       `db:"created_at"`
	LastUpdatedAt     time.Time       `db:"last_updated_at"`
}

// Payment is the payments table row joined with its invoice number.
type Payment struct {
	PaymentID            string          `db:"payment_id"`
	InvoiceID            string          `db:"invoice_id"`
	InvoiceNumber        string          `db:"invoice_number"`
	Amount               decimal.Decimal `db:"amount"`
	PaymentDate          time.Time       `db:"payment_date"`
	PaymentMethod        string          `db:"payment_method"`
	TransactionReference string          `db:"transaction_reference"`
	CreatedAt            time.Time       `db:"created_at"`
}
