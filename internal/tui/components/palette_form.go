package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/palettes"
	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

// PaletteForm stores state for the add/edit palette form. Field 0 is the
// name; fields 1..n are colors.
type PaletteForm struct {
	ID     string
	Name   string
	Colors []string
	Index  int
	Err    string

	base palettes.Draft
}

// NewPaletteForm returns a form for a new palette.
func NewPaletteForm() *PaletteForm {
	draft := palettes.NewDraft()
	return &PaletteForm{Colors: draft.Colors}
}

// EditPaletteForm returns a form prefilled from a draft.
func EditPaletteForm(draft palettes.Draft) *PaletteForm {
	colors := append([]string(nil), draft.Colors...)
	if len(colors) == 0 {
		colors = []string{""}
	}
	return &PaletteForm{ID: draft.ID, Name: draft.Name, Colors: colors, base: draft}
}

// Editing reports whether the form edits an existing palette.
func (f *PaletteForm) Editing() bool {
	return f.ID != ""
}

func (f *PaletteForm) fields() int {
	return len(f.Colors) + 1
}

// Move shifts focus between fields, wrapping around.
func (f *PaletteForm) Move(delta int) {
	n := f.fields()
	f.Index = ((f.Index+delta)%n + n) % n
}

// Type appends text to the focused field.
func (f *PaletteForm) Type(text string) {
	if f.Index == 0 {
		f.Name += text
		return
	}
	f.Colors[f.Index-1] += text
}

// Backspace removes the last rune of the focused field.
func (f *PaletteForm) Backspace() {
	trim := func(s string) string {
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		return string(r[:len(r)-1])
	}
	if f.Index == 0 {
		f.Name = trim(f.Name)
		return
	}
	f.Colors[f.Index-1] = trim(f.Colors[f.Index-1])
}

// AddColor appends an empty color row and focuses it.
func (f *PaletteForm) AddColor() {
	f.Colors = append(f.Colors, "")
	f.Index = len(f.Colors)
}

// RemoveColor drops the focused color row, keeping at least one.
func (f *PaletteForm) RemoveColor() {
	if f.Index == 0 || len(f.Colors) <= 1 {
		return
	}
	i := f.Index - 1
	f.Colors = append(f.Colors[:i], f.Colors[i+1:]...)
	if f.Index > len(f.Colors) {
		f.Index = len(f.Colors)
	}
}

// Draft returns the form contents for validation.
func (f *PaletteForm) Draft() palettes.Draft {
	d := f.base
	d.ID = f.ID
	d.Name = f.Name
	d.Colors = append([]string(nil), f.Colors...)
	return d
}

// Render renders the form lines.
func (f *PaletteForm) Render(styleSet styles.Styles) []string {
	title := "Add New Palette"
	if f.Editing() {
		title = "Edit Palette"
	}
	lines := []string{
		styleSet.Accent.Render(title),
		styleSet.Muted.Render("Tab/↑↓ move. ctrl+n add color. ctrl+d remove color. Enter save. Esc cancel."),
		"",
		f.renderField(styleSet, 0, "Palette Name", f.Name, ""),
	}
	for i, c := range f.Colors {
		preview := "       "
		if colors.IsValid(c) {
			preview = RenderSwatch(styleSet, c)
		} else if strings.TrimSpace(c) != "" {
			preview = styleSet.Error.Render(" ✗     ")
		}
		lines = append(lines, f.renderField(styleSet, i+1, fmt.Sprintf("Color %d", i+1), c, preview))
	}
	if f.Err != "" {
		lines = append(lines, "", styleSet.Error.Render(f.Err))
	}
	return lines
}

func (f *PaletteForm) renderField(styleSet styles.Styles, idx int, label, value, suffix string) string {
	line := fmt.Sprintf("%-13s %s", label+":", value)
	if idx == f.Index {
		line = styleSet.Focus.Render("> "+line+"_") + " " + suffix
		return line
	}
	return styleSet.Text.Render("  "+line) + " " + suffix
}
