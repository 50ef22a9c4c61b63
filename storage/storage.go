package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key is absent or its entry has
// expired.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable wraps backend failures (I/O errors, Redis down) so
// callers can distinguish a missing key from a broken mechanism.
var ErrUnavailable = errors.New("storage: backend unavailable")

// Store is the durable client-side key/value contract. Implementations
// must be safe for concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set writes key. A ttl <= 0 persists without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
