// Package consent tracks the durable user permission that gates palette storage.
package consent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/logging"
)

const (
	// Key is the store key holding the consent flag.
	Key = "cv_consent"

	// Accepted is the sentinel value written on grant.
	Accepted = "accepted"

	// Validity is how long a grant lasts.
	Validity = 365 * 24 * time.Hour
)

// Store is the slice of the key-value store the gate needs.
type Store interface {
	GetEntry(ctx context.Context, key string) (*db.Entry, error)
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// Gate reports and changes consent. It has no side effects beyond its own key.
type Gate struct {
	store  Store
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the clock used for grant expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// New creates a Gate over store.
func New(store Store, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		now:    time.Now,
		logger: logging.Component("consent"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasConsent reports whether a live grant exists. Store faults read as false.
func (g *Gate) HasConsent(ctx context.Context) bool {
	_, ok := g.ExpiresAt(ctx)
	return ok
}

// ExpiresAt returns when the current grant lapses.
func (g *Gate) ExpiresAt(ctx context.Context) (time.Time, bool) {
	entry, err := g.store.GetEntry(ctx, Key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			g.logger.Warn().Err(err).Msg("failed to read consent")
		}
		return time.Time{}, false
	}
	if entry.Value != Accepted || entry.ExpiresAt == nil {
		return time.Time{}, false
	}
	// The store checks expiry with its own clock; check again with ours.
	if !g.now().Before(*entry.ExpiresAt) {
		return time.Time{}, false
	}
	return *entry.ExpiresAt, true
}

// Grant records consent valid for Validity from now.
func (g *Gate) Grant(ctx context.Context) error {
	expires := g.now().Add(Validity)
	if err := g.store.Set(ctx, Key, Accepted, expires); err != nil {
		return fmt.Errorf("failed to grant consent: %w", err)
	}
	g.logger.Info().Time("expires_at", expires).Msg("consent granted")
	return nil
}

// Revoke clears consent.
func (g *Gate) Revoke(ctx context.Context) error {
	if err := g.store.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to revoke consent: %w", err)
	}
	g.logger.Info().Msg("consent revoked")
	return nil
}
