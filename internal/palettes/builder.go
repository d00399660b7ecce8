package palettes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
)

// ErrInvalidPalette is wrapped by every ValidationError.
var ErrInvalidPalette = errors.New("invalid palette")

// ValidationError reports one rejected field. Index is the color position
// for color errors, -1 otherwise.
type ValidationError struct {
	Field   string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %s", e.Field, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPalette
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Index: -1, Message: message}
}

// DefaultDraftColors seed a new palette form.
var DefaultDraftColors = []string{"#E69F00", "#56B4E9", "#009E73"}

// Draft is unvalidated palette input, as typed by the user.
type Draft struct {
	// ID keeps an existing palette's identity when editing; empty for new palettes.
	ID     string
	Name   string
	Colors []string

	// Source, Tags and Labels carry over from an edited palette. Labels are
	// keyed by canonical hex so they follow a color through reordering.
	Source models.PaletteSource
	Tags   []string
	Labels map[string]string
}

// NewDraft returns a draft prefilled with the default colors.
func NewDraft() Draft {
	return Draft{Colors: append([]string(nil), DefaultDraftColors...)}
}

// DraftFrom returns a draft for editing an existing palette.
func DraftFrom(p models.Palette) Draft {
	d := Draft{
		ID:     p.ID,
		Name:   p.Name,
		Colors: p.ColorValues(),
		Source: p.Source,
		Tags:   append([]string(nil), p.Tags...),
	}
	for _, entry := range p.Colors {
		if entry.Label() == "" {
			continue
		}
		hex, err := colors.ToCanonicalHex(entry.Value())
		if err != nil {
			continue
		}
		if d.Labels == nil {
			d.Labels = make(map[string]string)
		}
		d.Labels[hex] = entry.Label()
	}
	return d
}

// Build validates a draft and produces a palette with canonical colors.
// Blank color rows are dropped before validation. New palettes are user
// palettes; an edited palette keeps its source, tags and color labels.
func Build(d Draft) (models.Palette, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return models.Palette{}, fieldError("name", "please enter a palette name")
	}

	entries := make([]models.ColorEntry, 0, len(d.Colors))
	for i, raw := range d.Colors {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		hex, err := colors.ToCanonicalHex(raw)
		if err != nil {
			return models.Palette{}, &ValidationError{
				Field:   "colors",
				Index:   i,
				Message: fmt.Sprintf("invalid color %q: use hex, rgb(), hsl() or a color name", raw),
			}
		}
		if label, ok := d.Labels[hex]; ok {
			entries = append(entries, models.LabeledColor(hex, label))
			continue
		}
		entries = append(entries, models.Color(hex))
	}
	if len(entries) == 0 {
		return models.Palette{}, fieldError("colors", "please add at least one color")
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	source := models.PaletteSourceUser
	if d.ID != "" && d.Source.IsValid() {
		source = d.Source
	}
	tags := []string{}
	if len(d.Tags) > 0 {
		tags = append(tags, d.Tags...)
	}

	return models.Palette{
		ID:     id,
		Name:   name,
		Colors: entries,
		Tags:   tags,
		Source: source,
	}, nil
}

// Validate checks that a palette is well-formed.
func Validate(p models.Palette) error {
	if strings.TrimSpace(p.ID) == "" {
		return fieldError("id", "is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fieldError("name", "is required")
	}
	if !p.Source.IsValid() {
		return fieldError("source", fmt.Sprintf("unknown source %q", p.Source))
	}
	if len(p.Colors) == 0 {
		return fieldError("colors", "at least one color is required")
	}
	for i, c := range p.Colors {
		if !colors.IsValid(c.Value()) {
			return &ValidationError{Field: "colors", Index: i, Message: fmt.Sprintf("invalid color %q", c.Value())}
		}
	}
	return nil
}

// ValidateCollection checks every palette and id uniqueness.
func ValidateCollection(collection []models.Palette) error {
	seen := make(map[string]int, len(collection))
	for i, p := range collection {
		if err := Validate(p); err != nil {
			return fmt.Errorf("palette %d (%s): %w", i, p.ID, err)
		}
		if first, ok := seen[p.ID]; ok {
			return fmt.Errorf("palette %d: %w", i, fieldError("id", fmt.Sprintf("duplicate of palette %d", first)))
		}
		seen[p.ID] = i
	}
	return nil
}
