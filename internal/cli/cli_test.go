package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opencode-ai/colorvault/internal/config"
	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/preview"
	"github.com/opencode-ai/colorvault/internal/session"
	"github.com/opencode-ai/colorvault/internal/transfer"
)

func testPalettes() []models.Palette {
	return []models.Palette{
		{ID: "p1", Name: "Okabe Ito", Source: models.PaletteSourceBuiltin, Tags: []string{"colorblind"}},
		{ID: "p2", Name: "Sunset", Source: models.PaletteSourceUser, Tags: []string{"warm"}},
		{ID: "p3", Name: "sunset", Source: models.PaletteSourceUser},
	}
}

func TestFindPalette(t *testing.T) {
	collection := testPalettes()

	p, idx, err := findPalette(collection, "p2")
	if err != nil || p.ID != "p2" || idx != 1 {
		t.Fatalf("find by id: got %v %d %v", p.ID, idx, err)
	}

	p, idx, err = findPalette(collection, "1")
	if err != nil || p.ID != "p1" || idx != 0 {
		t.Fatalf("find by position: got %v %d %v", p.ID, idx, err)
	}

	p, _, err = findPalette(collection, "okabe ito")
	if err != nil || p.ID != "p1" {
		t.Fatalf("find by name: got %v %v", p.ID, err)
	}

	if _, _, err := findPalette(collection, "SUNSET"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous name error, got %v", err)
	}

	if _, _, err := findPalette(collection, "missing"); !errors.Is(err, session.ErrPaletteNotFound) {
		t.Fatalf("expected ErrPaletteNotFound, got %v", err)
	}
	if _, _, err := findPalette(collection, "4"); !errors.Is(err, session.ErrPaletteNotFound) {
		t.Fatalf("expected ErrPaletteNotFound for out of range position, got %v", err)
	}
}

func TestFilterPalettes(t *testing.T) {
	collection := testPalettes()

	if got := filterPalettes(collection, "", ""); len(got) != 3 {
		t.Fatalf("expected unfiltered collection, got %d", len(got))
	}
	if got := filterPalettes(collection, "user", ""); len(got) != 2 {
		t.Fatalf("expected 2 user palettes, got %d", len(got))
	}
	got := filterPalettes(collection, "", "WARM")
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("unexpected tag filter result: %v", models.PaletteIDs(got))
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" warm ", "", "Warm", "bold"})
	if strings.Join(got, ",") != "warm,bold" {
		t.Fatalf("unexpected tags: %v", got)
	}
	if got := normalizeTags(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", got)
	}
}

func TestParsePosition(t *testing.T) {
	if pos, err := parsePosition(" 3 "); err != nil || pos != 3 {
		t.Fatalf("parsePosition: %d %v", pos, err)
	}
	for _, bad := range []string{"0", "-1", "x"} {
		if _, err := parsePosition(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestResolveFormats(t *testing.T) {
	if f, err := resolveTransferFormat("", "-"); err != nil || f != transfer.FormatJSON {
		t.Fatalf("stdout default: %v %v", f, err)
	}
	if f, err := resolveTransferFormat("", "out.yml"); err != nil || f != transfer.FormatYAML {
		t.Fatalf("yml extension: %v %v", f, err)
	}
	if f, err := resolveTransferFormat("xlsx", "out.json"); err != nil || f != transfer.FormatXLSX {
		t.Fatalf("flag wins: %v %v", f, err)
	}
	if _, err := resolveTransferFormat("", "palettes"); !errors.Is(err, transfer.ErrUnknownFormat) {
		t.Fatalf("expected unknown format, got %v", err)
	}

	if f, err := resolvePreviewFormat("", "chart.svg"); err != nil || f != preview.FormatSVG {
		t.Fatalf("svg extension: %v %v", f, err)
	}
	if f, err := resolvePreviewFormat("", "-"); err != nil || f != preview.FormatPNG {
		t.Fatalf("png default: %v %v", f, err)
	}
}

func TestDefaultPreviewName(t *testing.T) {
	p := models.Palette{Name: "Tol  Bright!"}
	if got := defaultPreviewName(p, preview.KindBar, preview.FormatPNG); got != "tol-bright-bar.png" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := defaultPreviewName(models.Palette{Name: "???"}, preview.KindLine, preview.FormatSVG); got != "palette-line.svg" {
		t.Fatalf("unexpected fallback name %q", got)
	}
}

func TestWriteOutputJSONL(t *testing.T) {
	original := jsonlOutput
	jsonlOutput = true
	defer func() { jsonlOutput = original }()

	var buf bytes.Buffer
	if err := WriteOutput(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if buf.String() != "\"a\"\n\"b\"\n" {
		t.Fatalf("unexpected jsonl output: %q", buf.String())
	}
}

func TestFormatError(t *testing.T) {
	err := &PreflightError{Message: "broken", Hint: "fix it", NextStep: "colorvault list"}
	got := FormatError(err)
	for _, want := range []string{"Error: broken", "Hint: fix it", "Next: colorvault list"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if got := FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("unexpected plain error format %q", got)
	}
}

func TestSummarizePayload(t *testing.T) {
	got := summarizePayload([]byte(`{"palette_ids":["a","b"],"persisted":true}`))
	if got != "palette_ids=2 palettes persisted=true" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := summarizePayload(nil); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}

	noProgress = true
	t.Cleanup(func() { noProgress = false })

	return newApp(config.DefaultConfig(), database)
}

func TestAppEditSessionRespectsConsent(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	builtin := a.load(ctx)
	if len(builtin) == 0 {
		t.Fatal("expected the embedded catalog to load")
	}

	result, err := a.edit(ctx, func(c *session.Controller) error {
		return c.Move(0, 1)
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !result.ConsentMissing || result.Persisted {
		t.Fatalf("expected session-only commit, got %+v", result)
	}
	if _, ok := a.palettes.LoadUser(ctx); ok {
		t.Fatal("nothing may be stored without consent")
	}

	saved, err := a.ctrl.AcceptConsent(ctx)
	if err != nil || !saved {
		t.Fatalf("AcceptConsent: %v %v", saved, err)
	}
	stored, ok := a.palettes.LoadUser(ctx)
	if !ok {
		t.Fatal("expected stored collection after consent")
	}
	if stored[0].ID != builtin[1].ID || stored[1].ID != builtin[0].ID {
		t.Fatalf("stored order does not reflect the move: %v", models.PaletteIDs(stored))
	}

	events, err := a.events.List(ctx, db.EventQuery{})
	if err != nil {
		t.Fatalf("List events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected recorded activity")
	}
}

func TestAppEditFailureSkipsCommit(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	_, err := a.edit(ctx, func(c *session.Controller) error {
		return c.DeletePalette("missing")
	})
	if !errors.Is(err, session.ErrPaletteNotFound) {
		t.Fatalf("expected ErrPaletteNotFound, got %v", err)
	}
	if !a.ctrl.Editing() {
		t.Fatal("a failed mutation leaves the draft uncommitted")
	}
}
