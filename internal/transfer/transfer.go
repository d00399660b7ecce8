// Package transfer exports and imports palette collections as JSON, YAML or
// spreadsheets.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/palettes"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Transfer errors.
var (
	ErrUnknownFormat = errors.New("unknown transfer format")
	ErrEmptyImport   = errors.New("import contains no palettes")
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath guesses a format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Export writes the collection to w.
func Export(w io.Writer, collection []models.Palette, format Format) error {
	snapshot := models.NewSnapshot(collection)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatXLSX:
		return exportXLSX(w, snapshot.Palettes)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Import reads palettes from r. Every palette is validated, its colors
// normalized, and it is given a new id as a user palette.
func Import(r io.Reader, format Format) ([]models.Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	var raw []models.Palette
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatXLSX:
		raw, err = importXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyImport
	}

	out := make([]models.Palette, 0, len(raw))
	for i, p := range raw {
		built, err := palettes.Build(palettes.Draft{Name: p.Name, Colors: p.ColorValues()})
		if err != nil {
			return nil, fmt.Errorf("palette %d (%s): %w", i+1, p.Name, err)
		}
		if len(p.Tags) > 0 {
			built.Tags = append([]string(nil), p.Tags...)
		}
		out = append(out, built)
	}
	return out, nil
}

// decodeJSON accepts a snapshot object or a bare array, the stored form.
func decodeJSON(data []byte) ([]models.Palette, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []models.Palette
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return list, nil
	}

	var snapshot models.PalettesSnapshot
	if err := json.Unmarshal(trimmed, &snapshot); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return snapshot.Palettes, nil
}

func decodeYAML(data []byte) ([]models.Palette, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []models.Palette
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return list, nil
	}

	var snapshot models.PalettesSnapshot
	if err := root.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return snapshot.Palettes, nil
}
