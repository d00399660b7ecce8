package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Key-value repository errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid key")
)

// Entry is one stored key with its metadata.
type Entry struct {
	Key       string
	Value     string
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// Expired reports whether the entry has passed its expiry at now.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// KVRepository is a durable string key-value store with optional expiry.
// Each key is written independently; there is no cross-key transaction.
type KVRepository struct {
	db  *DB
	now func() time.Time
}

// NewKVRepository creates a new KVRepository.
func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db, now: time.Now}
}

// WithClock overrides the clock used for expiry checks.
func (r *KVRepository) WithClock(now func() time.Time) *KVRepository {
	if now != nil {
		r.now = now
	}
	return r
}

// Get returns the value for key. Missing and expired keys return ErrKeyNotFound.
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// GetEntry returns the live entry for key, with its expiry.
func (r *KVRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	var (
		entry     Entry
		expiresAt sql.NullString
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT key, value, expires_at, updated_at FROM kv WHERE key = ?
	`, key).Scan(&entry.Key, &entry.Value, &expiresAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if t, err := time.Parse(timeLayout, updatedAt); err == nil {
		entry.UpdatedAt = t
	}
	if expiresAt.Valid {
		t, err := time.Parse(timeLayout, expiresAt.String)
		if err != nil {
			r.db.logger.Warn().Err(err).Str("key", key).Msg("unreadable expiry, treating key as expired")
			return nil, ErrKeyNotFound
		}
		entry.ExpiresAt = &t
	}

	if entry.Expired(r.now()) {
		return nil, ErrKeyNotFound
	}
	return &entry, nil
}

// Set stores value under key, replacing any previous value.
// A zero expiresAt stores the key without expiry.
func (r *KVRepository) Set(ctx context.Context, key, value string, expiresAt time.Time) error {
	if key == "" {
		return ErrInvalidKey
	}

	var expires *string
	if !expiresAt.IsZero() {
		s := expiresAt.UTC().Format(timeLayout)
		expires = &s
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, key, value, expires, r.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
