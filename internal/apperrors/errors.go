package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates the deployment is missing required setup, such as a chart-of-accounts entry.
var ErrConfiguration = errors.New("configuration error")

// ErrImbalance indicates a journal entry whose debits and credits differ.
var ErrImbalance = errors.New("journal entry is unbalanced")

// ErrAlreadyPaid indicates a payment against an invoice that is fully paid.
var ErrAlreadyPaid = errors.New("invoice is already fully paid")

// ErrOverpayment indicates a payment larger than the invoice's outstanding balance.
var ErrOverpayment = errors.New("payment amount exceeds outstanding invoice balance")

// ErrInvalidAmount indicates a zero or negative payment amount.
var ErrInvalidAmount = errors.New("invalid payment amount")

// ErrConcurrentModification indicates a lost race on an invoice; callers may retry.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Kind classifies an error so callers can switch on the failure category.
type Kind string

const (
	KindValidation             Kind = "validation"
	KindNotFound               Kind = "not_found"
	KindDuplicate              Kind = "duplicate"
	KindConfiguration          Kind = "configuration"
	KindImbalance              Kind = "imbalance"
	KindDomainState            Kind = "domain_state"
	KindConcurrentModification Kind = "concurrent_modification"
	KindInternal               Kind = "internal"
)

// KindOf returns the category of err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidAmount):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrImbalance):
		return KindImbalance
	case errors.Is(err, ErrAlreadyPaid), errors.Is(err, ErrOverpayment):
		return KindDomainState
	case errors.Is(err, ErrConcurrentModification):
		return KindConcurrentModification
	default:
		return KindInternal
	}
}

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an unknown invoice, payment or account reference.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateInvoiceError reports an invoice number that is already in use.
type DuplicateInvoiceError struct {
	InvoiceNumber string
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("invoice number already exists: %s", e.InvoiceNumber)
}

func (e *DuplicateInvoiceError) Unwrap() error { return ErrDuplicate }

// ConfigurationError reports a chart-of-accounts entry the ledger requires but cannot find.
type ConfigurationError struct {
	AccountCode string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required account not found: %s", e.AccountCode)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// ImbalanceError carries both column totals of an entry that failed validation.
// Detail is set when the entry is structurally malformed rather than merely off-balance.
type ImbalanceError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Detail  string
}

func (e *ImbalanceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", ErrImbalance, e.Detail)
	}
	return fmt.Sprintf("%s: debit %s != credit %s", ErrImbalance, e.Debits.String(), e.Credits.String())
}

func (e *ImbalanceError) Unwrap() error { return ErrImbalance }

// AlreadyPaidError rejects a payment against a PAID invoice.
type AlreadyPaidError struct {
	InvoiceNumber string
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyPaid, e.InvoiceNumber)
}

func (e *AlreadyPaidError) Unwrap() error { return ErrAlreadyPaid }

// OverpaymentError rejects a payment that would drive the outstanding balance negative.
type OverpaymentError struct {
	InvoiceNumber string
	Amount        decimal.Decimal
	Outstanding   decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: invoice %s, payment %s, outstanding %s",
		ErrOverpayment, e.InvoiceNumber, e.Amount.StringFixed(2), e.Outstanding.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error { return ErrOverpayment }

// InvalidAmountError rejects a payment amount that is not strictly positive.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: %s must be greater than zero", ErrInvalidAmount, e.Amount.String())
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

// ConcurrentModificationError reports that an invoice changed underneath an operation.
type ConcurrentModificationError struct {
	InvoiceID string
	Reason    string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s on invoice %s: %s", ErrConcurrentModification, e.InvoiceID, e.Reason)
}

func (e *ConcurrentModificationError) Unwrap() error { return ErrConcurrentModification }

// AppError wraps an infrastructure failure with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause so sentinel checks see through the wrapper.
func (e *AppError) Unwrap() error { return e.Err }
