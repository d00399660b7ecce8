// Package palettes loads, merges and persists the palette collection.
package palettes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/catalog"
	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/events"
	"github.com/opencode-ai/colorvault/internal/logging"
	"github.com/opencode-ai/colorvault/internal/models"
)

// UserSnapshotKey is the store key holding the user's collection.
const UserSnapshotKey = "cv_palettes_v1"

// Store is the slice of the key-value store the repository needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// ConsentChecker gates persistence.
type ConsentChecker interface {
	HasConsent(ctx context.Context) bool
}

// Repository produces the active collection and writes it back when allowed.
// No method returns an error: catalog and store faults are logged and
// recovered as documented on each method.
type Repository struct {
	fetcher  catalog.Fetcher
	store    Store
	consent  ConsentChecker
	recorder *events.Recorder
	logger   zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithRecorder records catalog and persistence failures as events.
func WithRecorder(recorder *events.Recorder) Option {
	return func(r *Repository) {
		r.recorder = recorder
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// NewRepository creates a Repository.
func NewRepository(fetcher catalog.Fetcher, store Store, consent ConsentChecker, opts ...Option) *Repository {
	r := &Repository{
		fetcher: fetcher,
		store:   store,
		consent: consent,
		logger:  logging.Component("palettes"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadBuiltin fetches the built-in catalog. Any failure yields an empty slice.
func (r *Repository) LoadBuiltin(ctx context.Context) []models.Palette {
	if r.fetcher == nil {
		return []models.Palette{}
	}

	snapshot, err := r.fetcher.Fetch(ctx)
	if err != nil {
		source := r.fetcher.Source()
		r.logger.Warn().Err(err).Str("source", source).Msg("failed to load builtin palettes")
		r.recorder.Record(ctx, func(ctx context.Context, repo events.Repository) error {
			return events.LogCatalogFetchFailed(ctx, repo, source, err)
		})
		return []models.Palette{}
	}

	palettes := snapshot.Palettes
	if palettes == nil {
		palettes = []models.Palette{}
	}
	for i := range palettes {
		if palettes[i].Source == "" {
			palettes[i].Source = models.PaletteSourceBuiltin
		}
	}
	r.logger.Debug().Int("count", len(palettes)).Str("source", r.fetcher.Source()).Msg("loaded builtin palettes")
	return palettes
}

// LoadUser reads the stored snapshot. The bool is false when nothing usable
// is stored: never saved, unreadable, or not a JSON array.
func (r *Repository) LoadUser(ctx context.Context) ([]models.Palette, bool) {
	raw, err := r.store.Get(ctx, UserSnapshotKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn().Err(err).Msg("failed to read user palettes")
		}
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var palettes []models.Palette
	if err := json.Unmarshal([]byte(raw), &palettes); err != nil {
		r.logger.Warn().Err(err).Msg("ignoring corrupt user palettes")
		return nil, false
	}
	if palettes == nil {
		// "null" decodes without error but is not an array.
		return nil, false
	}
	return palettes, true
}

// Merge returns user when it has any palettes, otherwise builtin.
// The user snapshot is a complete prior view and replaces the catalog.
func Merge(builtin, user []models.Palette) []models.Palette {
	if len(user) > 0 {
		return user
	}
	return builtin
}

// Merge is the method form of Merge.
func (r *Repository) Merge(builtin, user []models.Palette) []models.Palette {
	return Merge(builtin, user)
}

// Load runs the startup sequence: builtin catalog, user snapshot, merge.
func (r *Repository) Load(ctx context.Context) []models.Palette {
	builtin := r.LoadBuiltin(ctx)
	user, _ := r.LoadUser(ctx)
	return models.ClonePalettes(Merge(builtin, user))
}

// Persist stores the whole collection as one snapshot. It returns false
// without writing when consent is missing, and false on a store fault.
func (r *Repository) Persist(ctx context.Context, collection []models.Palette) bool {
	if r.consent == nil || !r.consent.HasConsent(ctx) {
		r.logger.Debug().Msg("not saving palettes: consent not given")
		return false
	}

	if collection == nil {
		collection = []models.Palette{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		r.persistFailed(ctx, err)
		return false
	}
	if err := r.store.Set(ctx, UserSnapshotKey, string(data), time.Time{}); err != nil {
		r.persistFailed(ctx, err)
		return false
	}

	r.logger.Debug().Int("count", len(collection)).Msg("saved user palettes")
	return true
}

func (r *Repository) persistFailed(ctx context.Context, err error) {
	r.logger.Error().Err(err).Msg("failed to save user palettes")
	r.recorder.Record(ctx, func(ctx context.Context, repo events.Repository) error {
		return events.LogPersistFailed(ctx, repo, err.Error())
	})
}

// Clear removes the stored snapshot. Faults are logged, not returned.
func (r *Repository) Clear(ctx context.Context) {
	if err := r.store.Delete(ctx, UserSnapshotKey); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear user palettes")
		return
	}
	r.recorder.Record(ctx, events.LogCollectionCleared)
}
