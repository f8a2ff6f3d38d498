package store

import (
	"context"
	"errors"
)

// KV is the narrow durable key/value contract the session manager and
// cart ledger persist through. Implementations must be safe for
// concurrent use.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrNotFound = errors.New("key not found")
