// Package events provides helper functions for logging colorvault activity events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/models"
)

// CollectionEntityID is the entity id used for collection-level events.
const CollectionEntityID = "active"

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogCollectionCommitted records the end of an edit session.
func LogCollectionCommitted(ctx context.Context, repo Repository, ids []string, persisted bool) error {
	return create(ctx, repo, models.EventTypeCollectionCommitted, models.EntityTypeCollection, CollectionEntityID,
		models.CollectionCommittedPayload{PaletteIDs: ids, Persisted: persisted})
}

// LogPersistFailed records a snapshot write that did not reach the store.
func LogPersistFailed(ctx context.Context, repo Repository, reason string) error {
	return create(ctx, repo, models.EventTypeCollectionPersistFailed, models.EntityTypeCollection, CollectionEntityID,
		models.ErrorPayload{Error: reason, Context: "persist"})
}

// LogReordered records a new draft order.
func LogReordered(ctx context.Context, repo Repository, ids []string) error {
	return create(ctx, repo, models.EventTypeCollectionReordered, models.EntityTypeCollection, CollectionEntityID,
		models.ReorderedPayload{PaletteIDs: ids})
}

// LogCollectionCleared records removal of the user snapshot.
func LogCollectionCleared(ctx context.Context, repo Repository) error {
	return create(ctx, repo, models.EventTypeCollectionCleared, models.EntityTypeCollection, CollectionEntityID, nil)
}

// LogPaletteAdded records a palette appended to the draft.
func LogPaletteAdded(ctx context.Context, repo Repository, palette models.Palette) error {
	return logPalette(ctx, repo, models.EventTypePaletteAdded, palette)
}

// LogPaletteDeleted records a palette removed from the draft.
func LogPaletteDeleted(ctx context.Context, repo Repository, palette models.Palette) error {
	return logPalette(ctx, repo, models.EventTypePaletteDeleted, palette)
}

func logPalette(ctx context.Context, repo Repository, eventType models.EventType, palette models.Palette) error {
	if palette.ID == "" {
		return fmt.Errorf("palette id is required")
	}
	return create(ctx, repo, eventType, models.EntityTypePalette, palette.ID, models.PalettePayload{
		Name:   palette.Name,
		Colors: len(palette.Colors),
		Source: palette.Source,
	})
}

// LogConsentChanged records a consent grant or revocation.
func LogConsentChanged(ctx context.Context, repo Repository, granted bool) error {
	eventType := models.EventTypeConsentRevoked
	if granted {
		eventType = models.EventTypeConsentGranted
	}
	return create(ctx, repo, eventType, models.EntityTypeConsent, "cv_consent", nil)
}

// LogCatalogFetchFailed records a built-in catalog that could not be loaded.
func LogCatalogFetchFailed(ctx context.Context, repo Repository, source string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return create(ctx, repo, models.EventTypeCatalogFetchFailed, models.EntityTypeCatalog, source,
		models.ErrorPayload{Error: msg, Context: "load builtin"})
}

func create(ctx context.Context, repo Repository, eventType models.EventType, entityType models.EntityType, entityID string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if entityID == "" {
		return fmt.Errorf("entity id is required")
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Payload = data
	}

	return repo.Create(ctx, event)
}

// Recorder writes events best-effort: failures are logged, never returned.
// A nil *Recorder or one without a repository drops everything.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

// NewRecorder returns a Recorder backed by repo.
func NewRecorder(repo Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record runs fn against the repository and logs a failure.
func (r *Recorder) Record(ctx context.Context, fn func(context.Context, Repository) error) {
	if r == nil || r.repo == nil {
		return
	}
	if err := fn(ctx, r.repo); err != nil {
		r.logger.Warn().Err(err).Msg("failed to record event")
	}
}
