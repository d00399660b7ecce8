package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the activity log.
type EventType string

const (
	// Collection events
	EventTypeCollectionCommitted     EventType = "collection.committed"
	EventTypeCollectionPersistFailed EventType = "collection.persist_failed"
	EventTypeCollectionReordered     EventType = "collection.reordered"
	EventTypeCollectionCleared       EventType = "collection.cleared"

	// Palette events
	EventTypePaletteAdded   EventType = "palette.added"
	EventTypePaletteDeleted EventType = "palette.deleted"

	// Consent events
	EventTypeConsentGranted EventType = "consent.granted"
	EventTypeConsentRevoked EventType = "consent.revoked"

	// Catalog events
	EventTypeCatalogFetchFailed EventType = "catalog.fetch_failed"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypePalette    EntityType = "palette"
	EntityTypeCollection EntityType = "collection"
	EntityTypeConsent    EntityType = "consent"
	EntityTypeCatalog    EntityType = "catalog"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// CollectionCommittedPayload is the payload for collection.committed events.
type CollectionCommittedPayload struct {
	PaletteIDs []string `json:"palette_ids"`
	Persisted  bool     `json:"persisted"`
}

// PalettePayload is the payload for palette.added and palette.deleted events.
type PalettePayload struct {
	Name   string        `json:"name"`
	Colors int           `json:"colors"`
	Source PaletteSource `json:"source"`
}

// ReorderedPayload is the payload for collection.reordered events.
type ReorderedPayload struct {
	PaletteIDs []string `json:"palette_ids"`
}

// ErrorPayload is the payload for failure events.
type ErrorPayload struct {
	Error   string `json:"error"`
	Context string `json:"context,omitempty"`
}
