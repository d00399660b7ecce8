package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/opencode-ai/colorvault/internal/models"
)

func TestEventRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(setupTestDB(t))

	payload, _ := json.Marshal(models.PalettePayload{Name: "Okabe-Ito", Colors: 8, Source: models.PaletteSourceBuiltin})
	event := &models.Event{
		Type:       models.EventTypePaletteAdded,
		EntityType: models.EntityTypePalette,
		EntityID:   "okabe-ito",
		Payload:    payload,
		Metadata:   map[string]string{"via": "test"},
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected ID to be assigned")
	}

	got, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Type != models.EventTypePaletteAdded {
		t.Errorf("unexpected type %q", got.Type)
	}
	if got.Metadata["via"] != "test" {
		t.Errorf("unexpected metadata %v", got.Metadata)
	}
	if string(got.Payload) != string(payload) {
		t.Errorf("unexpected payload %s", got.Payload)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepositoryRejectsInvalid(t *testing.T) {
	repo := NewEventRepository(setupTestDB(t))
	err := repo.Create(context.Background(), &models.Event{Type: models.EventTypePaletteAdded})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestEventRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	types := []models.EventType{
		models.EventTypeConsentGranted,
		models.EventTypeCollectionCommitted,
		models.EventTypeCollectionCommitted,
	}
	for i, eventType := range types {
		event := &models.Event{
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Type:       eventType,
			EntityType: models.EntityTypeCollection,
			EntityID:   "active",
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, EventQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if !all[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("expected newest first, got %v", all[0].Timestamp)
	}

	committed := models.EventTypeCollectionCommitted
	filtered, err := repo.List(ctx, EventQuery{Type: &committed, Limit: 1})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Type != committed {
		t.Fatalf("unexpected filtered result: %+v", filtered)
	}

	since := base.Add(time.Second)
	recent, err := repo.List(ctx, EventQuery{Since: &since})
	if err != nil {
		t.Fatalf("List since: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 events since %v, got %d", since, len(recent))
	}
}
