package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

// RenderDeleteDialog asks the user to confirm deleting a palette.
func RenderDeleteDialog(styleSet styles.Styles, p models.Palette) string {
	lines := []string{
		styleSet.Warning.Render("Delete Palette?"),
		styleSet.Text.Render(fmt.Sprintf("Are you sure you want to delete %q?", p.Name)),
		styleSet.Muted.Render("The deletion is applied when you leave edit mode."),
		"",
		styleSet.Focus.Render("y") + styleSet.Muted.Render(" delete   ") + styleSet.Focus.Render("n") + styleSet.Muted.Render(" cancel"),
	}
	return styleSet.Banner.Render(strings.Join(lines, "\n"))
}

// RenderConsentBanner explains local storage and how to accept it.
func RenderConsentBanner(styleSet styles.Styles) string {
	text := styleSet.Text.Render("Palette edits are kept only for this session until you allow local storage. ") +
		styleSet.Focus.Render("c") + styleSet.Muted.Render(" accept")
	return styleSet.Banner.Render(text)
}
