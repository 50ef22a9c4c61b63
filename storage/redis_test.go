package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, "tgtest")
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedis(t)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "token", "abc123", time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := store.Get(ctx, "token")
	if err != nil || value != "abc123" {
		t.Fatalf("Get = (%q, %v), want (abc123, nil)", value, err)
	}

	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedis(rdb, "tgtest")
	mr.Close()

	if _, err := store.Get(ctx, "token"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get with backend down = %v, want ErrUnavailable", err)
	}
	if err := store.Set(ctx, "token", "v", 0); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set with backend down = %v, want ErrUnavailable", err)
	}
}
