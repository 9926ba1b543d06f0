package repositories

import "context"

// InvoiceLocker serialises read-modify-write cycles on a single invoice.
type InvoiceLocker interface {
	// Lock blocks until the invoice is held exclusively, ctx ends or the locker's
	// wait budget runs out; the latter fails with apperrors.ErrConcurrentModification.
	// The returned func releases the lock and is safe to call once.
	Lock(ctx context.Context, invoiceID string) (unlock func(), err error)
}
