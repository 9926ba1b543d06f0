package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
)

const (
	keyPrefix     = "invoice_ledger:lock:invoice:"
	retryInterval = 25 * time.Millisecond
	unlockTimeout = 2 * time.Second
)

// Deletes the key only if it still holds our token, so an expired lock
// re-acquired by someone else is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds invoice locks as Redis keys with a TTL, shared by every instance.
type RedisLocker struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisLocker creates a locker whose keys expire after ttl and whose waits give up after timeout.
func NewRedisLocker(client *redis.Client, ttl, timeout time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, timeout: timeout}
}

var _ portsrepo.InvoiceLocker = (*RedisLocker)(nil)

func (l *RedisLocker) Lock(ctx context.Context, invoiceID string) (func(), error) {
	key := keyPrefix + invoiceID
	token := uuid.NewString()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to acquire invoice lock", err)
		}
		if ok {
			return l.unlocker(ctx, key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, &apperrors.ConcurrentModificationError{
				InvoiceID: invoiceID,
				Reason:    "timed out waiting for invoice lock",
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func (l *RedisLocker) unlocker(ctx context.Context, key, token string) func() {
	logger := middleware.GetLoggerFromCtx(ctx)
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled.
			uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
			defer cancel()
			if err := unlockScript.Run(uctx, l.client, []string{key}, token).Err(); err != nil {
				logger.Error("Failed to release invoice lock", slog.String("key", key), slog.String("error", err.Error()))
			}
		})
	}
}

// String describes the locker for startup logs.
func (l *RedisLocker) String() string {
	return fmt.Sprintf("redis(ttl=%s, timeout=%s)", l.ttl, l.timeout)
}
