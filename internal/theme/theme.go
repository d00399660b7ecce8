// Package theme stores the UI theme preference and resolves "system" against
// the terminal's ambient background.
package theme

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/logging"
	"github.com/opencode-ai/colorvault/internal/models"
)

// Key is the store key holding the theme preference.
const Key = "cv_theme"

// ErrToggleDisabled is returned when changing the theme while the feature is off.
var ErrToggleDisabled = errors.New("theme toggle is disabled")

// KV is the slice of the key-value store the theme store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
}

// Store reads and writes the raw preference.
type Store struct {
	kv     KV
	logger zerolog.Logger
}

// NewStore creates a Store.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, logger: logging.Component("theme")}
}

// Get returns the stored theme, or system when absent, unrecognized or unreadable.
func (s *Store) Get(ctx context.Context) models.Theme {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read theme")
		}
		return models.ThemeSystem
	}
	// Stored values are exact literals; anything else is ignored.
	switch t := models.Theme(raw); t {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
		return t
	default:
		return models.ThemeSystem
	}
}

// Set stores the theme.
func (s *Store) Set(ctx context.Context, t models.Theme) error {
	if _, ok := models.ParseTheme(string(t)); !ok {
		return fmt.Errorf("unknown theme %q", t)
	}
	if err := s.kv.Set(ctx, Key, string(t), time.Time{}); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Preference applies the theme feature flag on top of a Store. With the
// toggle off the default theme is always used and nothing is written.
type Preference struct {
	store         *Store
	toggleEnabled bool
	defaultTheme  models.Theme
}

// NewPreference creates a Preference.
func NewPreference(store *Store, toggleEnabled bool, defaultTheme models.Theme) *Preference {
	if _, ok := models.ParseTheme(string(defaultTheme)); !ok {
		defaultTheme = models.ThemeLight
	}
	return &Preference{store: store, toggleEnabled: toggleEnabled, defaultTheme: defaultTheme}
}

// Enabled reports whether the user may change the theme.
func (p *Preference) Enabled() bool {
	return p.toggleEnabled
}

// Current returns the effective theme preference.
func (p *Preference) Current(ctx context.Context) models.Theme {
	if !p.toggleEnabled {
		return p.defaultTheme
	}
	return p.store.Get(ctx)
}

// Set changes the preference.
func (p *Preference) Set(ctx context.Context, t models.Theme) error {
	if !p.toggleEnabled {
		return ErrToggleDisabled
	}
	return p.store.Set(ctx, t)
}

// Resolve maps system to light or dark using signal. A nil signal resolves
// system to light.
func Resolve(t models.Theme, signal Signal) models.Theme {
	switch t {
	case models.ThemeLight, models.ThemeDark:
		return t
	}
	if signal != nil && signal.Dark() {
		return models.ThemeDark
	}
	return models.ThemeLight
}
