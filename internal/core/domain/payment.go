package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column widths for the free-text payment fields, in characters.
const (
	MaxPaymentMethodLength        = 64
	MaxTransactionReferenceLength = 255
)

// Payment is an amount applied against an invoice. Immutable once recorded.
// InvoiceID is a lookup key only; the invoice does not hold its payments.
type Payment struct {
	PaymentID            string          `json:"paymentID"`
	InvoiceID            string          `json:"invoiceID"`
	InvoiceNumber        string          `json:"invoiceNumber"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentDate          time.Time       `json:"paymentDate"`
	PaymentMethod        string          `json:"paymentMethod"`
	TransactionReference string          `json:"transactionReference"`
	CreatedAt            time.Time       `json:"createdAt"`
}
