package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentTagsJSONOutput(t *testing.T) {
	previous := Logger()
	t.Cleanup(func() {
		mu.Lock()
		base = previous
		mu.Unlock()
	})

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "debug", Format: "json", Output: &buf}))

	logger := Component("palettes")
	logger.Debug().Str("palette_id", "p1").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "palettes", line["component"])
	assert.Equal(t, "p1", line["palette_id"])
	assert.Equal(t, "debug", line["level"])
}

func TestInitRejectsUnknownValues(t *testing.T) {
	assert.Error(t, Init(Options{Level: "chatty"}))
	assert.Error(t, Init(Options{Format: "xml"}))
}

func TestLevelFiltersBelowThreshold(t *testing.T) {
	previous := Logger()
	t.Cleanup(func() {
		mu.Lock()
		base = previous
		mu.Unlock()
	})

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "warn", Format: "json", Output: &buf}))
	logger := Component("consent")
	logger.Info().Msg("ignored")
	assert.Zero(t, buf.Len())
}
