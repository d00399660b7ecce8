package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/opencode-ai/colorvault/internal/models"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return hasTTY()
}

func colorize(text, color string) string {
	if color == "" || !colorEnabled() {
		return text
	}
	return color + text + colorReset
}

func formatSource(source models.PaletteSource) string {
	switch source {
	case models.PaletteSourceBuiltin:
		return colorize(string(source), colorCyan)
	case models.PaletteSourceUser:
		return colorize(string(source), colorMagenta)
	default:
		return colorize(formatStatusLabel("WARN", string(source)), colorYellow)
	}
}

func formatConsent(granted bool) string {
	if granted {
		return colorize("OK granted", colorGreen)
	}
	return colorize("WARN not granted", colorYellow)
}

func formatColorValidity(valid bool) string {
	if valid {
		return colorize("OK", colorGreen)
	}
	return colorize("ERR", colorRed)
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
