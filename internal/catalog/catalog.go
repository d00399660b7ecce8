// Package catalog retrieves the built-in palette catalog.
//
// A catalog is a PalettesSnapshot document. It can come from an HTTP endpoint,
// a JSON or YAML file, or the copy compiled into the binary.
package catalog

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/colorvault/internal/models"
)

// BuiltinSource names the embedded catalog.
const BuiltinSource = "builtin"

const defaultTimeout = 10 * time.Second

// maxCatalogBytes bounds how much of a remote catalog is read.
const maxCatalogBytes = 4 << 20

// Catalog errors.
var (
	ErrUnexpectedStatus  = errors.New("unexpected catalog status")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrMalformed         = errors.New("malformed catalog")
)

//go:embed builtin/palettes.json
var builtinFS embed.FS

// Fetcher retrieves a catalog snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (models.PalettesSnapshot, error)
	// Source describes where the catalog comes from, for logs.
	Source() string
}

// New picks a fetcher for source: "builtin" (or empty), an http(s) URL, or a
// file path. timeout applies to HTTP fetches only.
func New(source string, timeout time.Duration) Fetcher {
	source = strings.TrimSpace(source)
	switch {
	case source == "" || source == BuiltinSource:
		return EmbeddedFetcher{}
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return NewHTTPFetcher(source, timeout)
	default:
		return FileFetcher{Path: source}
	}
}

// HTTPFetcher downloads a JSON catalog, bypassing caches.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher constructs a fetcher with defaults applied.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Source returns the URL.
func (f *HTTPFetcher) Source() string {
	return f.URL
}

// Fetch GETs the catalog. Non-2xx responses are failures.
func (f *HTTPFetcher) Fetch(ctx context.Context) (models.PalettesSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("build catalog request: %w", err)
	}
	// A redeployed catalog must always be observed.
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return models.PalettesSnapshot{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("read catalog: %w", err)
	}
	return DecodeJSON(body)
}

// FileFetcher reads a catalog from disk. The extension picks the format.
type FileFetcher struct {
	Path string
}

// Source returns the path.
func (f FileFetcher) Source() string {
	return f.Path
}

// Fetch reads and decodes the file.
func (f FileFetcher) Fetch(ctx context.Context) (models.PalettesSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.PalettesSnapshot{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("read catalog %s: %w", f.Path, err)
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return models.PalettesSnapshot{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Path)
	}
}

// EmbeddedFetcher serves the catalog compiled into the binary.
type EmbeddedFetcher struct{}

// Source returns BuiltinSource.
func (EmbeddedFetcher) Source() string {
	return BuiltinSource
}

// Fetch decodes the embedded catalog.
func (EmbeddedFetcher) Fetch(ctx context.Context) (models.PalettesSnapshot, error) {
	data, err := builtinFS.ReadFile("builtin/palettes.json")
	if err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("read builtin catalog: %w", err)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a JSON catalog document.
func DecodeJSON(data []byte) (models.PalettesSnapshot, error) {
	var snapshot models.PalettesSnapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return finish(snapshot), nil
}

// DecodeYAML parses a YAML catalog document.
func DecodeYAML(data []byte) (models.PalettesSnapshot, error) {
	var snapshot models.PalettesSnapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return models.PalettesSnapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return finish(snapshot), nil
}

// finish marks palettes without a source as builtin; a catalog only ships those.
func finish(snapshot models.PalettesSnapshot) models.PalettesSnapshot {
	if snapshot.Palettes == nil {
		snapshot.Palettes = []models.Palette{}
	}
	for i := range snapshot.Palettes {
		if snapshot.Palettes[i].Source == "" {
			snapshot.Palettes[i].Source = models.PaletteSourceBuiltin
		}
	}
	return snapshot
}
