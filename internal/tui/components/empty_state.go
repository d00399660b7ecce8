// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "🎨", "⚠").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is a key or CLI command (e.g., "colorvault import <file>").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	// Icon + Title
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	// Subtitle
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	// Suggestions
	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Try:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// EmptyGallery is shown when neither the catalog nor the user snapshot has palettes.
func EmptyGallery() EmptyState {
	return EmptyState{
		Icon:     "🎨",
		Title:    "No palettes yet",
		Subtitle: "The built-in catalog could not be loaded and nothing is saved.",
		Suggestions: []Suggestion{
			{Command: "e then a", Description: "create a palette in edit mode"},
			{Command: "colorvault import <file>", Description: "import palettes from json, yaml or xlsx"},
		},
	}
}

// EmptyDraft is shown when every palette was deleted in edit mode.
func EmptyDraft() EmptyState {
	return EmptyState{
		Icon:     "🗑",
		Title:    "All palettes removed",
		Subtitle: "Press e to commit, or a to add a palette.",
	}
}

// EmptyFiltered is shown when a filter matches nothing.
func EmptyFiltered(filter string) EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    fmt.Sprintf("No palettes match '%s'", filter),
		Subtitle: "Press / to edit or clear the filter.",
	}
}
