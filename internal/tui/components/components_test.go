package components

import (
	"strings"
	"testing"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/palettes"
	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

func TestRenderPaletteCard(t *testing.T) {
	styleSet := styles.DefaultStyles()
	card := PaletteCard{
		Palette: models.Palette{
			ID:     "p",
			Name:   "Sunset",
			Colors: []models.ColorEntry{models.Color("#ff0000"), models.Color("orange"), models.Color("rgb(0, 0, 0)")},
			Tags:   []string{"warm"},
			Source: models.PaletteSourceUser,
		},
		Index:       1,
		Selected:    true,
		Editing:     true,
		SwatchLimit: 2,
	}

	result := RenderPaletteCard(styleSet, card)
	for _, want := range []string{"2. Sunset", "[user]", "#FF0000", "#FFA500", "+1", "#warm", "3 colors", "J/K move"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in card, got: %s", want, result)
		}
	}
}

func TestRenderSwatchFallsBackForInvalidColor(t *testing.T) {
	result := RenderSwatch(styles.DefaultStyles(), "mystery")
	if !strings.Contains(result, "MYSTERY") {
		t.Errorf("Expected raw upper-case label, got: %s", result)
	}
}

func TestPaletteFormEditing(t *testing.T) {
	form := NewPaletteForm()
	if len(form.Colors) != len(palettes.DefaultDraftColors) {
		t.Fatalf("expected default colors, got %v", form.Colors)
	}

	form.Type("Sea")
	form.Backspace()
	form.Type("a Glass")
	form.Move(1)
	form.Backspace()
	form.Backspace()
	form.Type("FF")
	form.AddColor()
	form.Type("teal")
	form.Move(-1)
	form.RemoveColor()

	draft := form.Draft()
	if draft.Name != "Sea Glass" {
		t.Fatalf("unexpected name: %q", draft.Name)
	}
	want := []string{"#E69FFF", "#56B4E9", "teal"}
	if strings.Join(draft.Colors, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected colors: %v", draft.Colors)
	}

	p, err := palettes.Build(draft)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p.Colors[2].Value() != "#008080" {
		t.Fatalf("unexpected normalized color: %q", p.Colors[2].Value())
	}
}

func TestPaletteFormMoveWraps(t *testing.T) {
	form := EditPaletteForm(palettes.Draft{ID: "x", Name: "n", Colors: []string{"red"}})
	if !form.Editing() {
		t.Fatal("expected edit form")
	}
	form.Move(-1)
	if form.Index != 1 {
		t.Fatalf("expected wrap to last field, got %d", form.Index)
	}
	form.Move(1)
	if form.Index != 0 {
		t.Fatalf("expected wrap to name field, got %d", form.Index)
	}
	form.Index = 1
	form.RemoveColor()
	if len(form.Colors) != 1 {
		t.Fatal("last color row must be kept")
	}

	lines := strings.Join(form.Render(styles.DefaultStyles()), "\n")
	if !strings.Contains(lines, "Edit Palette") {
		t.Errorf("Expected edit title, got: %s", lines)
	}
}

func TestPaletteFormDraftKeepsEditedPaletteMetadata(t *testing.T) {
	existing := models.Palette{
		ID:     "tableau",
		Name:   "Tableau",
		Colors: []models.ColorEntry{models.LabeledColor("#4e79a7", "blue"), models.Color("#f28e2b")},
		Tags:   []string{"charts"},
		Source: models.PaletteSourceBuiltin,
	}
	form := EditPaletteForm(palettes.DraftFrom(existing))
	form.Move(2)
	form.RemoveColor()

	p, err := palettes.Build(form.Draft())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.Source != models.PaletteSourceBuiltin {
		t.Errorf("source = %q, want builtin", p.Source)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "charts" {
		t.Errorf("tags = %v", p.Tags)
	}
	if len(p.Colors) != 1 || p.Colors[0].Label() != "blue" {
		t.Errorf("colors = %v, want the labeled blue", p.ColorValues())
	}
}

func TestRenderDialogs(t *testing.T) {
	styleSet := styles.DefaultStyles()
	result := RenderDeleteDialog(styleSet, models.Palette{Name: "Sunset"})
	if !strings.Contains(result, `"Sunset"`) {
		t.Errorf("Expected palette name in dialog, got: %s", result)
	}
	if !strings.Contains(RenderConsentBanner(styleSet), "accept") {
		t.Error("Expected accept hint in consent banner")
	}
}
