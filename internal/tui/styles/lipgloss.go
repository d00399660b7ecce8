package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/colorvault/internal/colors"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme    Theme
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Panel    lipgloss.Style
	Border   lipgloss.Style
	Focus    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Banner   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles builds styles from the light theme.
func DefaultStyles() Styles {
	return BuildStyles(LightTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(tokens.Border)).
		Padding(0, 1)

	return Styles{
		Theme:    theme,
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Panel)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(tokens.Border)),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Focus:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
		Banner:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Warning)).Padding(0, 1),
		Card:     card,
		Selected: card.BorderForeground(lipgloss.Color(tokens.Focus)),
	}
}

// Swatch returns a block style filled with color and readable text on top.
// Unparsable colors render as a bordered placeholder.
func (s Styles) Swatch(color string) lipgloss.Style {
	hex, err := colors.ToCanonicalHex(color)
	if err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.Tokens.Error))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(colors.TextColorFor(hex)))
}
