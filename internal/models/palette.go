// Package models defines the core data types shared across colorvault.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the only PalettesSnapshot version this build understands.
const SnapshotVersion = 1

// PaletteSource records where a palette came from.
type PaletteSource string

const (
	// PaletteSourceBuiltin marks palettes shipped in the catalog.
	PaletteSourceBuiltin PaletteSource = "builtin"
	// PaletteSourceUser marks palettes created by the user.
	PaletteSourceUser PaletteSource = "user"
)

// IsValid reports whether the source is a known value.
func (s PaletteSource) IsValid() bool {
	return s == PaletteSourceBuiltin || s == PaletteSourceUser
}

// Mode is the gallery interaction mode.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// Theme is a UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme converts a stored string to a Theme.
// The second return value is false for unrecognized input.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	case ThemeSystem:
		return ThemeSystem, true
	default:
		return "", false
	}
}

// ColorEntry is a single palette color: a bare color string or a labeled value.
// Use Value to read it; the encoded shape round-trips through JSON and YAML.
type ColorEntry struct {
	value   string
	label   string
	labeled bool
}

// Color returns a bare color entry.
func Color(value string) ColorEntry {
	return ColorEntry{value: value}
}

// LabeledColor returns a structured color entry carrying a label.
func LabeledColor(value, label string) ColorEntry {
	return ColorEntry{value: value, label: label, labeled: true}
}

// Value returns the raw color text.
func (c ColorEntry) Value() string {
	return c.value
}

// Label returns the optional label.
func (c ColorEntry) Label() string {
	return c.label
}

// IsStructured reports whether the entry was given as an object.
func (c ColorEntry) IsStructured() bool {
	return c.labeled
}

type colorObject struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// MarshalJSON encodes the entry in the shape it was created with.
func (c ColorEntry) MarshalJSON() ([]byte, error) {
	if c.labeled {
		return json.Marshal(colorObject{Value: c.value, Label: c.label})
	}
	return json.Marshal(c.value)
}

var errNullColor = errors.New("color entry must not be null")

// UnmarshalJSON accepts either a string or {"value": ..., "label": ...}.
func (c *ColorEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errNullColor
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Color(s)
		return nil
	}

	var obj colorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("color entry must be a string or an object: %w", err)
	}
	*c = LabeledColor(obj.Value, obj.Label)
	return nil
}

// MarshalYAML encodes the entry in the shape it was created with.
func (c ColorEntry) MarshalYAML() (any, error) {
	if c.labeled {
		return colorObject{Value: c.value, Label: c.label}, nil
	}
	return c.value, nil
}

// UnmarshalYAML accepts either a scalar or a mapping with value/label keys.
func (c *ColorEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = Color(node.Value)
		return nil
	case yaml.MappingNode:
		var obj colorObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*c = LabeledColor(obj.Value, obj.Label)
		return nil
	default:
		return fmt.Errorf("color entry at line %d must be a string or a mapping", node.Line)
	}
}

// Palette is a named, ordered set of colors.
type Palette struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Colors []ColorEntry  `json:"colors" yaml:"colors"`
	Tags   []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source PaletteSource `json:"source" yaml:"source"`
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	out := p
	if p.Colors != nil {
		out.Colors = append([]ColorEntry(nil), p.Colors...)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}

// ColorValues returns the raw color text of every entry, in order.
func (p Palette) ColorValues() []string {
	values := make([]string, len(p.Colors))
	for i, entry := range p.Colors {
		values[i] = entry.Value()
	}
	return values
}

// ClonePalettes deep-copies a collection. A nil input yields nil.
func ClonePalettes(palettes []Palette) []Palette {
	if palettes == nil {
		return nil
	}
	out := make([]Palette, len(palettes))
	for i, p := range palettes {
		out[i] = p.Clone()
	}
	return out
}

// PaletteIDs returns the ids of a collection in order.
func PaletteIDs(palettes []Palette) []string {
	ids := make([]string, len(palettes))
	for i, p := range palettes {
		ids[i] = p.ID
	}
	return ids
}

// PalettesSnapshot is the versioned wire format of a palette collection.
type PalettesSnapshot struct {
	Version  int       `json:"version" yaml:"version"`
	Palettes []Palette `json:"palettes" yaml:"palettes"`
}

// NewSnapshot wraps a collection in a current-version snapshot.
func NewSnapshot(palettes []Palette) PalettesSnapshot {
	if palettes == nil {
		palettes = []Palette{}
	}
	return PalettesSnapshot{Version: SnapshotVersion, Palettes: palettes}
}
