package colors

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/colorvault/internal/models"
)

func TestToCanonicalHexAcceptsSupportedGrammars(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"#ABC", "#aabbcc"},
		{"#abcd", "#aabbcc"},
		{"#E69F00", "#e69f00"},
		{"#56b4e9ff", "#56b4e9"},
		{"abc", "#aabbcc"},
		{"009E73", "#009e73"},
		{"aabbccdd", "#aabbcc"},
		{"  #ffffff  ", "#ffffff"},
		{"rgb(255, 0, 0)", "#ff0000"},
		{"RGB(0,128,255)", "#0080ff"},
		{"rgb(100%, 0%, 50%)", "#ff0080"},
		{"rgba(255, 0, 0, 0.5)", "#ff0000"},
		{"rgb(255 128 0)", "#ff8000"},
		{"rgb(255 128 0 / 50%)", "#ff8000"},
		{"rgba(12.6, 0, 0, 1)", "#0d0000"},
		{"hsl(0, 100%, 50%)", "#ff0000"},
		{"hsl(120deg 100% 25%)", "#008000"},
		{"hsl(0.5turn, 100%, 50%)", "#00ffff"},
		{"hsla(240, 100%, 50%, 0.3)", "#0000ff"},
		{"hsl(-120, 100%, 50%)", "#0000ff"},
		{"hsl(200grad 100% 50%)", "#00ffff"},
		{"RebeccaPurple", "#663399"},
		{"white", "#ffffff"},
		{"transparent", "#000000"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			require.True(t, IsValid(tc.input))
			got, err := ToCanonicalHex(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, 7)
		})
	}
}

func TestInvalidColorsAreRejected(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"#",
		"#12",
		"#12345",
		"#1234567",
		"#ggg",
		"abcd",
		"notacolor",
		"rgb(256, 0, 0)",
		"rgb(-1, 0, 0)",
		"rgb(0, 0)",
		"rgb(0, 0, 0",
		"rgb()",
		"rgb(0, 0 0)",
		"rgb(0, 0, 0, 0, 0)",
		"rgb(nan, 0, 0)",
		"rgb(0 0 0 / )",
		"rgb(0, 0, 0 / 1)",
		"rgba(0, 0, 0, 1.5)",
		"rgb(101%, 0%, 0%)",
		"hsl(0, 101%, 50%)",
		"hsl(x, 50%, 50%)",
		"hsl(0, 50%)",
		"cmyk(0, 0, 0, 0)",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			assert.False(t, IsValid(input))

			hex, err := ToCanonicalHex(input)
			require.Error(t, err)
			assert.Empty(t, hex)
			assert.True(t, errors.Is(err, ErrInvalidColor))

			var invalid *InvalidColorError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, input, invalid.Input)
		})
	}
}

func TestNamedColorsIncludeCSS4Keywords(t *testing.T) {
	for input, want := range map[string]string{
		"rebeccapurple":  "#663399",
		"RebeccaPurple":  "#663399",
		"tomato":         "#ff6347",
		"CornflowerBlue": "#6495ed",
	} {
		got, err := ToCanonicalHex(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestToCanonicalHexIsIdempotent(t *testing.T) {
	faker := gofakeit.New(42)
	inputs := []string{"rgb(10, 20, 30)", "hsl(33, 47%, 61%)", "teal", "#FfA", "rgba(1, 2, 3, 0.1)"}
	for i := 0; i < 50; i++ {
		inputs = append(inputs, faker.HexColor())
	}

	for _, input := range inputs {
		first, err := ToCanonicalHex(input)
		require.NoError(t, err, input)
		second, err := ToCanonicalHex(first)
		require.NoError(t, err, first)
		assert.Equal(t, first, second, input)
	}
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance("#000000"), 1e-9)
	assert.InDelta(t, 1.0, Luminance("#ffffff"), 1e-9)
	assert.InDelta(t, 0.2126, Luminance("red"), 1e-9)
	assert.InDelta(t, 0.7152, Luminance("rgb(0, 255, 0)"), 1e-9)
	assert.InDelta(t, 0.0722, Luminance("hsl(240, 100%, 50%)"), 1e-9)
	assert.Equal(t, 0.0, Luminance("not a color"))

	// Below the 0.03928 knee the curve is linear.
	assert.InDelta(t, (5.0/255)/12.92, Luminance("rgb(5, 5, 5)"), 1e-9)

	assert.Less(t, Luminance("#333333"), Luminance("#cccccc"))
}

func TestPreferLightText(t *testing.T) {
	assert.True(t, PreferLightText("#000000"))
	assert.False(t, PreferLightText("#ffffff"))
	assert.True(t, PreferLightText("#808080"))
	assert.False(t, PreferLightText("yellow"))
	// Invalid input has luminance 0, so it prefers light text.
	assert.True(t, PreferLightText("garbage"))

	assert.Equal(t, "#ffffff", TextColorFor("navy"))
	assert.Equal(t, "#000000", TextColorFor("#fafafa"))
}

func TestToRGB(t *testing.T) {
	got, err := ToRGB("#e69f00")
	require.NoError(t, err)
	assert.Equal(t, "rgb(230, 159, 0)", got)

	got, err = ToRGB("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, "rgba(255, 0, 0, 0.502)", got)

	got, err = ToRGB("hsla(0, 0%, 0%, 0.25)")
	require.NoError(t, err)
	assert.Equal(t, "rgba(0, 0, 0, 0.25)", got)

	_, err = ToRGB("nope")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestNormalizeFallsBackToRawValue(t *testing.T) {
	entries := []models.ColorEntry{
		models.Color("#E69F00"),
		models.LabeledColor("rgb(86, 180, 233)", "sky"),
		models.Color(" mystery "),
	}

	assert.Equal(t, []string{"#e69f00", "#56b4e9", "mystery"}, NormalizeAll(entries))
	assert.Equal(t, "#56B4E9", ClipboardText("rgb(86, 180, 233)"))
	assert.Equal(t, "MYSTERY", ClipboardText("mystery"))
}
