package token

import (
	"context"
	"errors"
	"time"

	"github.com/orchidsoft/taskgate/storage"
)

const (
	accessKey  = "tg_access_token"
	refreshKey = "tg_refresh_token"

	// DefaultAccessTTL is the durable expiry horizon for the persisted
	// access token.
	DefaultAccessTTL = 7 * 24 * time.Hour
)

// Repository persists the token pair. Absent credentials read as ""
// without error; storage backend failures surface so callers can decide
// whether the mechanism or the credential is the problem.
type Repository struct {
	access    storage.Store
	refresh   storage.Store
	accessTTL time.Duration
}

// Option adjusts a Repository.
type Option func(*Repository)

// WithAccessTTL overrides the persisted access-token expiry horizon.
func WithAccessTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		if ttl > 0 {
			r.accessTTL = ttl
		}
	}
}

// NewRepository binds the access credential to one store (usually a
// [storage.Mirror]) and the refresh credential to another.
func NewRepository(access, refresh storage.Store, opts ...Option) *Repository {
	r := &Repository{
		access:    access,
		refresh:   refresh,
		accessTTL: DefaultAccessTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AccessToken returns the persisted access token, or "" when absent.
func (r *Repository) AccessToken(ctx context.Context) (string, error) {
	return r.get(ctx, r.access, accessKey)
}

// SetAccessToken persists the access token under the configured expiry
// horizon across every mirror of the access store.
func (r *Repository) SetAccessToken(ctx context.Context, token string) error {
	return r.access.Set(ctx, accessKey, token, r.accessTTL)
}

// RemoveAccessToken clears the access token from all mirrors.
func (r *Repository) RemoveAccessToken(ctx context.Context) error {
	return r.access.Delete(ctx, accessKey)
}

// RefreshToken returns the persisted refresh token, or "" when absent.
func (r *Repository) RefreshToken(ctx context.Context) (string, error) {
	return r.get(ctx, r.refresh, refreshKey)
}

// SetRefreshToken persists the refresh token without an expiry; its
// lifetime is bounded server-side.
func (r *Repository) SetRefreshToken(ctx context.Context, token string) error {
	return r.refresh.Set(ctx, refreshKey, token, 0)
}

// RemoveRefreshToken clears the refresh token.
func (r *Repository) RemoveRefreshToken(ctx context.Context) error {
	return r.refresh.Delete(ctx, refreshKey)
}

// Clear removes both credentials. All stores are attempted regardless of
// individual failures.
func (r *Repository) Clear(ctx context.Context) error {
	return errors.Join(
		r.access.Delete(ctx, accessKey),
		r.refresh.Delete(ctx, refreshKey),
	)
}

func (r *Repository) get(ctx context.Context, store storage.Store, key string) (string, error) {
	value, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}
