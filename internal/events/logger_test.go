package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/colorvault/internal/models"
)

type fakeRepo struct {
	events []*models.Event
	err    error
}

func (r *fakeRepo) Create(ctx context.Context, event *models.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeRepo) last() *models.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func TestLogCollectionCommitted(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogCollectionCommitted(context.Background(), repo, []string{"c", "b"}, true); err != nil {
		t.Fatalf("LogCollectionCommitted failed: %v", err)
	}

	event := repo.last()
	if event == nil {
		t.Fatal("expected event to be created")
	}
	if event.Type != models.EventTypeCollectionCommitted {
		t.Fatalf("unexpected event type: %q", event.Type)
	}
	if event.EntityID != CollectionEntityID {
		t.Fatalf("unexpected entity id: %q", event.EntityID)
	}

	var payload models.CollectionCommittedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if !payload.Persisted || len(payload.PaletteIDs) != 2 || payload.PaletteIDs[0] != "c" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLogPaletteAdded(t *testing.T) {
	repo := &fakeRepo{}
	palette := models.Palette{
		ID:     "p-1",
		Name:   "Sunset",
		Colors: []models.ColorEntry{models.Color("#ff0000"), models.Color("#ffa500")},
		Source: models.PaletteSourceUser,
	}

	if err := LogPaletteAdded(context.Background(), repo, palette); err != nil {
		t.Fatalf("LogPaletteAdded failed: %v", err)
	}

	event := repo.last()
	if event.EntityType != models.EntityTypePalette || event.EntityID != "p-1" {
		t.Fatalf("unexpected entity: %s/%s", event.EntityType, event.EntityID)
	}

	var payload models.PalettePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Colors != 2 || payload.Name != "Sunset" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLogPaletteRequiresID(t *testing.T) {
	if err := LogPaletteDeleted(context.Background(), &fakeRepo{}, models.Palette{Name: "x"}); err == nil {
		t.Fatal("expected error for palette without id")
	}
}

func TestLogRequiresRepository(t *testing.T) {
	if err := LogConsentChanged(context.Background(), nil, true); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestLogConsentChanged(t *testing.T) {
	repo := &fakeRepo{}
	ctx := context.Background()

	if err := LogConsentChanged(ctx, repo, true); err != nil {
		t.Fatalf("LogConsentChanged failed: %v", err)
	}
	if err := LogConsentChanged(ctx, repo, false); err != nil {
		t.Fatalf("LogConsentChanged failed: %v", err)
	}
	if repo.events[0].Type != models.EventTypeConsentGranted || repo.events[1].Type != models.EventTypeConsentRevoked {
		t.Fatalf("unexpected event types: %q, %q", repo.events[0].Type, repo.events[1].Type)
	}
	if repo.events[0].Payload != nil {
		t.Fatalf("expected no payload, got %s", repo.events[0].Payload)
	}
}

func TestRecorderSwallowsFailures(t *testing.T) {
	repo := &fakeRepo{err: errors.New("disk full")}
	recorder := NewRecorder(repo, zerolog.Nop())

	called := false
	recorder.Record(context.Background(), func(ctx context.Context, r Repository) error {
		called = true
		return LogCollectionCleared(ctx, r)
	})
	if !called {
		t.Fatal("expected record func to run")
	}

	var nilRecorder *Recorder
	nilRecorder.Record(context.Background(), func(context.Context, Repository) error {
		t.Fatal("nil recorder must not call through")
		return nil
	})
}
