package token

import (
	"context"
	"testing"
	"time"

	"github.com/orchidsoft/taskgate/storage"
)

func newTestRepository() (*Repository, *storage.Memory, *storage.Memory) {
	access := storage.NewMemory()
	refresh := storage.NewMemory()
	return NewRepository(access, refresh), access, refresh
}

func TestRepositoryAbsentReadsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newTestRepository()

	access, err := repo.AccessToken(ctx)
	if err != nil || access != "" {
		t.Fatalf("AccessToken = (%q, %v), want (\"\", nil)", access, err)
	}
	refresh, err := repo.RefreshToken(ctx)
	if err != nil || refresh != "" {
		t.Fatalf("RefreshToken = (%q, %v), want (\"\", nil)", refresh, err)
	}
}

func TestRepositoryKeysAreSeparate(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newTestRepository()

	if err := repo.SetAccessToken(ctx, "access-1"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}
	if err := repo.SetRefreshToken(ctx, "refresh-1"); err != nil {
		t.Fatalf("SetRefreshToken failed: %v", err)
	}

	access, _ := repo.AccessToken(ctx)
	refresh, _ := repo.RefreshToken(ctx)
	if access != "access-1" || refresh != "refresh-1" {
		t.Fatalf("got access=%q refresh=%q", access, refresh)
	}

	if err := repo.RemoveAccessToken(ctx); err != nil {
		t.Fatalf("RemoveAccessToken failed: %v", err)
	}
	refresh, _ = repo.RefreshToken(ctx)
	if refresh != "refresh-1" {
		t.Fatal("removing the access token must not touch the refresh token")
	}
}

func TestRepositoryClearWipesBoth(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newTestRepository()

	_ = repo.SetAccessToken(ctx, "a")
	_ = repo.SetRefreshToken(ctx, "r")

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	access, _ := repo.AccessToken(ctx)
	refresh, _ := repo.RefreshToken(ctx)
	if access != "" || refresh != "" {
		t.Fatalf("Clear left access=%q refresh=%q", access, refresh)
	}
}

func TestRepositoryAccessTTL(t *testing.T) {
	ctx := context.Background()
	access := storage.NewMemory()
	repo := NewRepository(access, storage.NewMemory(), WithAccessTTL(time.Nanosecond))

	if err := repo.SetAccessToken(ctx, "short-lived"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	token, err := repo.AccessToken(ctx)
	if err != nil || token != "" {
		t.Fatalf("expired access token read as (%q, %v), want (\"\", nil)", token, err)
	}
}

func TestRepositoryMirroredAccess(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemory()
	secondary := storage.NewMemory()
	repo := NewRepository(storage.NewMirror(primary, secondary), storage.NewMemory())

	if err := repo.SetAccessToken(ctx, "mirrored"); err != nil {
		t.Fatalf("SetAccessToken failed: %v", err)
	}

	// Clear the primary mechanism; the credential must survive.
	if err := primary.Delete(ctx, "tg_access_token"); err != nil {
		t.Fatalf("primary delete failed: %v", err)
	}
	token, err := repo.AccessToken(ctx)
	if err != nil || token != "mirrored" {
		t.Fatalf("AccessToken after primary wipe = (%q, %v), want (mirrored, nil)", token, err)
	}
}
