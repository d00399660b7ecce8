package db

import (
	"context"
	"errors"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	applied, err := database.MigrateUp(context.Background())
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no pending migrations, got %d", applied)
	}
}

func TestKVRepositorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(setupTestDB(t))

	if _, err := repo.Get(ctx, "cv_theme"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := repo.Set(ctx, "cv_theme", "dark", time.Time{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := repo.Get(ctx, "cv_theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "dark" {
		t.Errorf("expected dark, got %q", got)
	}

	if err := repo.Set(ctx, "cv_theme", "light", time.Time{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := repo.Get(ctx, "cv_theme"); got != "light" {
		t.Errorf("expected overwrite to light, got %q", got)
	}

	if err := repo.Delete(ctx, "cv_theme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "cv_theme"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "cv_theme"); err != nil {
		t.Fatalf("deleting a missing key should succeed: %v", err)
	}
}

func TestKVRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := NewKVRepository(setupTestDB(t)).WithClock(func() time.Time { return now })

	expiresAt := now.Add(time.Hour)
	if err := repo.Set(ctx, "cv_consent", "accepted", expiresAt); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entry, err := repo.GetEntry(ctx, "cv_consent")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.ExpiresAt == nil || !entry.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, entry.ExpiresAt)
	}

	now = now.Add(2 * time.Hour)
	if _, err := repo.Get(ctx, "cv_consent"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected expired key to read as missing, got %v", err)
	}
}

func TestKVRepositoryRejectsEmptyKey(t *testing.T) {
	repo := NewKVRepository(setupTestDB(t))
	if err := repo.Set(context.Background(), "", "x", time.Time{}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
