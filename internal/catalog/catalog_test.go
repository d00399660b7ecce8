package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
)

const sampleJSON = `{
  "version": 1,
  "palettes": [
    {"id": "a", "name": "Alpha", "colors": ["#ff0000", {"value": "blue", "label": "sea"}]},
    {"id": "b", "name": "Beta", "colors": ["rgb(0, 255, 0)"], "source": "user"}
  ]
}`

func TestNewPicksFetcherBySource(t *testing.T) {
	assert.IsType(t, EmbeddedFetcher{}, New("", 0))
	assert.IsType(t, EmbeddedFetcher{}, New("builtin", 0))
	assert.IsType(t, &HTTPFetcher{}, New("https://example.com/palettes.json", time.Second))
	assert.IsType(t, FileFetcher{}, New("./palettes.yaml", 0))
}

func TestEmbeddedCatalogIsWellFormed(t *testing.T) {
	snapshot, err := EmbeddedFetcher{}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snapshot.Version)
	require.NotEmpty(t, snapshot.Palettes)

	seen := map[string]bool{}
	for _, p := range snapshot.Palettes {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, models.PaletteSourceBuiltin, p.Source)
		require.NotEmpty(t, p.Colors, p.ID)
		for _, c := range p.Colors {
			assert.True(t, colors.IsValid(c.Value()), "%s: %s", p.ID, c.Value())
		}
	}
}

func TestHTTPFetcherBypassesCache(t *testing.T) {
	var cacheControl, pragma string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cacheControl = r.Header.Get("Cache-Control")
		pragma = r.Header.Get("Pragma")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer server.Close()

	snapshot, err := NewHTTPFetcher(server.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no-store", cacheControl)
	assert.Equal(t, "no-cache", pragma)

	require.Len(t, snapshot.Palettes, 2)
	assert.Equal(t, models.PaletteSourceBuiltin, snapshot.Palettes[0].Source)
	assert.Equal(t, models.PaletteSourceUser, snapshot.Palettes[1].Source)
	assert.Equal(t, "sea", snapshot.Palettes[0].Colors[1].Label())
}

func TestHTTPFetcherFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPFetcherFailsOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"palettes": [`))
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.URL, time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFileFetcherFormats(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "palettes.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o600))

	yamlPath := filepath.Join(dir, "palettes.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
version: 1
palettes:
  - id: a
    name: Alpha
    colors:
      - "#ff0000"
      - value: blue
        label: sea
`), 0o600))

	for _, path := range []string{jsonPath, yamlPath} {
		snapshot, err := FileFetcher{Path: path}.Fetch(context.Background())
		require.NoError(t, err, path)
		require.NotEmpty(t, snapshot.Palettes)
		first := snapshot.Palettes[0]
		assert.Equal(t, "Alpha", first.Name)
		assert.Equal(t, []string{"#ff0000", "blue"}, first.ColorValues())
		assert.True(t, first.Colors[1].IsStructured())
	}

	txtPath := filepath.Join(dir, "palettes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(sampleJSON), 0o600))
	_, err := FileFetcher{Path: txtPath}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = FileFetcher{Path: filepath.Join(dir, "missing.json")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestDecodeRejectsEmptyDocuments(t *testing.T) {
	_, err := DecodeJSON([]byte("  "))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = DecodeYAML(nil)
	assert.ErrorIs(t, err, ErrMalformed)

	snapshot, err := DecodeJSON([]byte(`{"version": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Palettes)
	assert.Empty(t, snapshot.Palettes)
}
