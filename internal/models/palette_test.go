package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestColorEntryDecodesBothShapes(t *testing.T) {
	var entries []ColorEntry
	require.NoError(t, json.Unmarshal([]byte(`["#ff0000", {"value": "teal", "label": "sea"}]`), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, Color("#ff0000"), entries[0])
	assert.Equal(t, LabeledColor("teal", "sea"), entries[1])

	entries = nil
	require.NoError(t, yaml.Unmarshal([]byte("- \"#ff0000\"\n- value: teal\n  label: sea\n"), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, LabeledColor("teal", "sea"), entries[1])
}

func TestColorEntryRejectsNull(t *testing.T) {
	var entries []ColorEntry
	err := json.Unmarshal([]byte(`["#ff0000", null]`), &entries)
	assert.ErrorIs(t, err, errNullColor)

	var p Palette
	err = json.Unmarshal([]byte(`{"id": "a", "name": "A", "colors": [ null ], "source": "user"}`), &p)
	assert.ErrorIs(t, err, errNullColor)
}
