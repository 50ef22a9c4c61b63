package storage

import (
	"context"
	"errors"
	"log"
	"time"
)

// Mirror writes every entry to a primary and a secondary Store so the
// credential survives one mechanism being cleared. Reads prefer the
// primary and fall back to the secondary, healing the primary on a hit.
// Delete clears both mirrors.
type Mirror struct {
	primary   Store
	secondary Store
	healTTL   time.Duration
}

// MirrorOption adjusts a Mirror.
type MirrorOption func(*Mirror)

// WithHealTTL sets the expiry applied when a secondary hit is written
// back to the primary. Without it healed entries carry no expiry until
// the next Set re-establishes one.
func WithHealTTL(ttl time.Duration) MirrorOption {
	return func(m *Mirror) {
		if ttl > 0 {
			m.healTTL = ttl
		}
	}
}

// NewMirror combines two stores into one mirrored Store.
func NewMirror(primary, secondary Store, opts ...MirrorOption) *Mirror {
	m := &Mirror{primary: primary, secondary: secondary}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get implements Store.
func (m *Mirror) Get(ctx context.Context, key string) (string, error) {
	value, err := m.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Print("taskgate: mirror primary read failed, trying secondary")
	}

	value, serr := m.secondary.Get(ctx, key)
	if serr != nil {
		if errors.Is(err, ErrNotFound) && errors.Is(serr, ErrNotFound) {
			return "", ErrNotFound
		}
		// A broken primary must not read as an absent credential.
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", serr
	}

	// Heal the primary so the next read does not depend on the
	// secondary mechanism. The entry's original expiry is unknown
	// here; the configured heal TTL stands in for it.
	if err := m.primary.Set(ctx, key, value, m.healTTL); err != nil {
		log.Print("taskgate: mirror primary heal failed")
	}
	return value, nil
}

// Set implements Store. The write succeeds when at least one mirror
// accepts it; a single-mirror failure is logged, not surfaced.
func (m *Mirror) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	perr := m.primary.Set(ctx, key, value, ttl)
	serr := m.secondary.Set(ctx, key, value, ttl)

	if perr != nil && serr != nil {
		return perr
	}
	if perr != nil {
		log.Print("taskgate: mirror primary write failed")
	}
	if serr != nil {
		log.Print("taskgate: mirror secondary write failed")
	}
	return nil
}

// Delete implements Store. Both mirrors are always attempted.
func (m *Mirror) Delete(ctx context.Context, key string) error {
	perr := m.primary.Delete(ctx, key)
	serr := m.secondary.Delete(ctx, key)
	return errors.Join(perr, serr)
}
