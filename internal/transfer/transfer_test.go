package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opencode-ai/colorvault/internal/models"
)

func sampleCollection() []models.Palette {
	return []models.Palette{
		{
			ID:     "okabe-ito",
			Name:   "Okabe-Ito",
			Colors: []models.ColorEntry{models.Color("#E69F00"), models.LabeledColor("#56B4E9", "sky"), models.Color("rgb(0, 158, 115)")},
			Tags:   []string{"colorblind-safe", "qualitative"},
			Source: models.PaletteSourceBuiltin,
		},
		{
			ID:     "mine",
			Name:   "Mine",
			Colors: []models.ColorEntry{models.Color("black")},
			Source: models.PaletteSourceUser,
		},
	}
}

func TestExportImportAllFormats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatXLSX} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, sampleCollection(), format))

			imported, err := Import(&buf, format)
			require.NoError(t, err)
			require.Len(t, imported, 2)

			assert.Equal(t, "Okabe-Ito", imported[0].Name)
			assert.Equal(t, []string{"#e69f00", "#56b4e9", "#009e73"}, imported[0].ColorValues())
			assert.Equal(t, []string{"colorblind-safe", "qualitative"}, imported[0].Tags)
			assert.Equal(t, []string{"#000000"}, imported[1].ColorValues())

			for _, p := range imported {
				assert.Equal(t, models.PaletteSourceUser, p.Source)
				_, err := uuid.Parse(p.ID)
				assert.NoError(t, err, "imported palettes get fresh ids")
			}
		})
	}
}

func TestExportJSONIsSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleCollection(), FormatJSON))
	out := buf.String()
	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"label": "sky"`)
}

func TestExportXLSXStylesColorCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleCollection(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	value, err := f.GetCellValue(SheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "#E69F00", value)

	styleID, err := f.GetCellStyle(SheetName, "E2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), "E69F00")
}

func TestImportAcceptsBareArrays(t *testing.T) {
	jsonInput := `[{"id": "x", "name": "Bare", "colors": ["red"]}]`
	imported, err := Import(strings.NewReader(jsonInput), FormatJSON)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "Bare", imported[0].Name)

	yamlInput := "- name: Bare\n  colors: [red, {value: blue, label: sea}]\n"
	imported, err = Import(strings.NewReader(yamlInput), FormatYAML)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, []string{"#ff0000", "#0000ff"}, imported[0].ColorValues())
}

func TestImportRejectsInvalid(t *testing.T) {
	_, err := Import(strings.NewReader(`{"version": 1, "palettes": []}`), FormatJSON)
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = Import(strings.NewReader(`[{"name": "Bad", "colors": ["nope"]}]`), FormatJSON)
	assert.Error(t, err)

	_, err = Import(strings.NewReader(`{`), FormatJSON)
	assert.Error(t, err)

	_, err = Import(strings.NewReader(""), "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("out/palettes.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatForPath("palettes.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatForPath("palettes")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
