package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

const (
	paletteCardWidth = 64
	swatchWidth      = 9
)

// PaletteCard contains data needed to render a palette card.
type PaletteCard struct {
	Palette  models.Palette
	Index    int
	Selected bool
	Editing  bool
	// SwatchLimit caps visible swatches; extra colors are summarized.
	SwatchLimit int
}

// RenderPaletteCard renders a palette with its swatches.
func RenderPaletteCard(styleSet styles.Styles, card PaletteCard) string {
	p := card.Palette

	marker := "  "
	if card.Selected {
		marker = styleSet.Focus.Render("> ")
	}
	header := marker + styleSet.Title.Render(fmt.Sprintf("%d. %s", card.Index+1, defaultIfEmpty(p.Name, "(unnamed)")))
	if p.Source == models.PaletteSourceUser {
		header += " " + styleSet.Info.Render("[user]")
	}
	if card.Editing && card.Selected {
		header += " " + styleSet.Muted.Render("J/K move  d delete")
	}

	meta := styleSet.Muted.Render(fmt.Sprintf("%d colors", len(p.Colors)))
	if len(p.Tags) > 0 {
		meta += styleSet.Muted.Render("  #" + strings.Join(p.Tags, " #"))
	}

	lines := []string{header, RenderSwatches(styleSet, p.Colors, card.SwatchLimit), meta}

	cardStyle := styleSet.Card
	if card.Selected {
		cardStyle = styleSet.Selected
	}
	return cardStyle.Width(paletteCardWidth).MaxWidth(paletteCardWidth + 2).Render(strings.Join(lines, "\n"))
}

// RenderSwatches draws one labeled block per color, up to limit.
func RenderSwatches(styleSet styles.Styles, entries []models.ColorEntry, limit int) string {
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	blocks := make([]string, 0, limit+1)
	for _, entry := range entries[:limit] {
		blocks = append(blocks, RenderSwatch(styleSet, entry.Value()))
	}
	if extra := len(entries) - limit; extra > 0 {
		blocks = append(blocks, styleSet.Muted.Render(fmt.Sprintf(" +%d", extra)))
	}
	return strings.Join(blocks, "")
}

// RenderSwatch draws a single color block labeled with its clipboard form.
func RenderSwatch(styleSet styles.Styles, value string) string {
	label := colors.ClipboardText(value)
	if len(label) > swatchWidth-2 {
		label = label[:swatchWidth-2]
	}
	return styleSet.Swatch(value).Width(swatchWidth).Render(" " + label)
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
