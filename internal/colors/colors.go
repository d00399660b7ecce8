// Package colors parses, validates and canonicalizes color strings.
//
// Supported syntax: hex (#rgb, #rgba, #rrggbb, #rrggbbaa, and unprefixed rgb,
// rrggbb, rrggbbaa), rgb()/rgba(), hsl()/hsla(), CSS named colors and
// "transparent". Every exported function is total: unparsable input yields
// false, 0, or an error value, never a panic.
package colors

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opencode-ai/colorvault/internal/models"
)

// ErrInvalidColor is returned for text that is not a supported color.
var ErrInvalidColor = errors.New("invalid color")

// InvalidColorError carries the rejected input.
type InvalidColorError struct {
	Input  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid color %q", e.Input)
	}
	return fmt.Sprintf("invalid color %q: %s", e.Input, e.Reason)
}

func (e *InvalidColorError) Unwrap() error {
	return ErrInvalidColor
}

// RGBA is a parsed sRGB color with channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Hex formats the color as canonical lowercase #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RGB255 returns the 8-bit channels.
func (c RGBA) RGB255() (r, g, b uint8) {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
}

// Parse parses any supported color syntax.
func Parse(text string) (RGBA, error) {
	c, reason := parse(text)
	if reason != "" {
		return RGBA{}, &InvalidColorError{Input: text, Reason: reason}
	}
	return c, nil
}

// IsValid reports whether text is a supported color.
func IsValid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// ToCanonicalHex normalizes a color to lowercase #rrggbb.
func ToCanonicalHex(text string) (string, error) {
	c, err := Parse(text)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// ToRGB formats a color as rgb(r, g, b), or rgba(r, g, b, a) when translucent.
func ToRGB(text string) (string, error) {
	c, err := Parse(text)
	if err != nil {
		return "", err
	}
	r, g, b := c.RGB255()
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.A)), nil
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
}

func formatAlpha(a float64) string {
	s := fmt.Sprintf("%.3f", a)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Luminance returns relative luminance in [0, 1]; invalid input yields 0.
func Luminance(text string) float64 {
	c, err := Parse(text)
	if err != nil {
		return 0
	}
	return relativeLuminance(c)
}

func relativeLuminance(c RGBA) float64 {
	return 0.2126*toLinear(c.R) + 0.7152*toLinear(c.G) + 0.0722*toLinear(c.B)
}

func toLinear(c float64) float64 {
	c = math.Max(0, math.Min(1, c))
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// PreferLightText reports whether text drawn on this color should be light.
func PreferLightText(text string) bool {
	return Luminance(text) < 0.5
}

// TextColorFor returns the canonical text color to draw on a background.
func TextColorFor(background string) string {
	if PreferLightText(background) {
		return "#ffffff"
	}
	return "#000000"
}

// ClipboardText is the form copied when a swatch is clicked: uppercase hex,
// or the raw input in upper case when it does not parse.
func ClipboardText(text string) string {
	return strings.ToUpper(NormalizeValue(text))
}

// NormalizeValue returns canonical hex, or the trimmed input when unparsable.
func NormalizeValue(text string) string {
	if hex, err := ToCanonicalHex(text); err == nil {
		return hex
	}
	return strings.TrimSpace(text)
}

// Normalize reduces a color entry to its display form.
func Normalize(entry models.ColorEntry) string {
	return NormalizeValue(entry.Value())
}

// NormalizeAll normalizes every entry of a palette, preserving order.
func NormalizeAll(entries []models.ColorEntry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = Normalize(entry)
	}
	return out
}
