// Package lock provides InvoiceLocker implementations: an in-process one for single
// instances and a Redis-backed one for deployments running several API replicas.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
)

// LocalLocker serialises work per invoice inside one process.
type LocalLocker struct {
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker creates a locker that gives up after timeout.
func NewLocalLocker(timeout time.Duration) *LocalLocker {
	return &LocalLocker{
		timeout: timeout,
		locks:   make(map[string]*keyLock),
	}
}

var _ portsrepo.InvoiceLocker = (*LocalLocker)(nil)

func (l *LocalLocker) Lock(ctx context.Context, invoiceID string) (func(), error) {
	k := l.acquireRef(invoiceID)

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case k.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-k.sem
				l.releaseRef(invoiceID, k)
			})
		}, nil
	case <-ctx.Done():
		l.releaseRef(invoiceID, k)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseRef(invoiceID, k)
		return nil, &apperrors.ConcurrentModificationError{
			InvoiceID: invoiceID,
			Reason:    "timed out waiting for invoice lock",
		}
	}
}

func (l *LocalLocker) acquireRef(invoiceID string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.locks[invoiceID]
	if !ok {
		k = &keyLock{sem: make(chan struct{}, 1)}
		l.locks[invoiceID] = k
	}
	k.refs++
	return k
}

// releaseRef drops the entry once nobody holds or waits for it.
func (l *LocalLocker) releaseRef(invoiceID string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k.refs--
	if k.refs == 0 {
		delete(l.locks, invoiceID)
	}
}
