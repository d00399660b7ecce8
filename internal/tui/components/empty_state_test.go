package components

import (
	"strings"
	"testing"

	"github.com/opencode-ai/colorvault/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("basic empty state", func(t *testing.T) {
		es := EmptyState{
			Title: "No swatches",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "No swatches") {
			t.Errorf("Expected title in output, got: %s", result)
		}
	})

	t.Run("empty state with icon", func(t *testing.T) {
		es := EmptyState{
			Icon:  "🎨",
			Title: "Empty catalog",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "🎨") {
			t.Errorf("Expected icon in output, got: %s", result)
		}
		if !strings.Contains(result, "Empty catalog") {
			t.Errorf("Expected title in output, got: %s", result)
		}
	})

	t.Run("empty state with subtitle", func(t *testing.T) {
		es := EmptyState{
			Title:    "No saved palettes",
			Subtitle: "Grant consent to keep edits",
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Grant consent to keep edits") {
			t.Errorf("Expected subtitle in output, got: %s", result)
		}
	})

	t.Run("empty state with suggestions", func(t *testing.T) {
		es := EmptyState{
			Title: "No palettes",
			Suggestions: []Suggestion{
				{Command: "colorvault import <file>", Description: "import"},
			},
		}
		result := es.Render(styleSet)
		if !strings.Contains(result, "Try:") {
			t.Errorf("Expected 'Try:' header, got: %s", result)
		}
		if !strings.Contains(result, "colorvault import") {
			t.Errorf("Expected command in output, got: %s", result)
		}
	})
}

func TestEmptyStateRenderCompact(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("compact without suggestions", func(t *testing.T) {
		es := EmptyState{
			Icon:  "🔍",
			Title: "No results",
		}
		result := es.RenderCompact(styleSet)
		if !strings.Contains(result, "🔍") {
			t.Errorf("Expected icon in compact output, got: %s", result)
		}
		if !strings.Contains(result, "No results") {
			t.Errorf("Expected title in compact output, got: %s", result)
		}
	})

	t.Run("compact with suggestion", func(t *testing.T) {
		es := EmptyState{
			Title: "Empty",
			Suggestions: []Suggestion{
				{Command: "e then a"},
			},
		}
		result := es.RenderCompact(styleSet)
		if !strings.Contains(result, "Try: e then a") {
			t.Errorf("Expected suggestion hint in compact output, got: %s", result)
		}
	})
}

func TestPrebuiltEmptyStates(t *testing.T) {
	styleSet := styles.BuildStyles(styles.DarkTheme)

	tests := []struct {
		name     string
		es       EmptyState
		expected []string
	}{
		{
			name:     "EmptyGallery",
			es:       EmptyGallery(),
			expected: []string{"No palettes yet", "colorvault import"},
		},
		{
			name:     "EmptyDraft",
			es:       EmptyDraft(),
			expected: []string{"All palettes removed", "Press e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.es.Render(styleSet)
			for _, exp := range tt.expected {
				if !strings.Contains(result, exp) {
					t.Errorf("Expected %q in %s output, got: %s", exp, tt.name, result)
				}
			}
		})
	}
}

func TestEmptyFiltered(t *testing.T) {
	styleSet := styles.DefaultStyles()
	es := EmptyFiltered("pastel")
	result := es.Render(styleSet)

	if !strings.Contains(result, "pastel") {
		t.Errorf("Expected filter in output, got: %s", result)
	}
	if !strings.Contains(result, "Press /") {
		t.Errorf("Expected filter hint in output, got: %s", result)
	}
}
