package colors

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// parse dispatches on the surface syntax of a color string.
func parse(text string) (RGBA, string) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return RGBA{}, "empty color"
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:], true)
	case strings.HasPrefix(s, "rgb"):
		args, reason := functionArgs(s, "rgba", "rgb")
		if reason != "" {
			return RGBA{}, reason
		}
		return parseRGB(args)
	case strings.HasPrefix(s, "hsl"):
		args, reason := functionArgs(s, "hsla", "hsl")
		if reason != "" {
			return RGBA{}, reason
		}
		return parseHSL(args)
	case s == "transparent":
		return RGBA{}, ""
	}

	if named, ok := lookupName(s); ok {
		return RGBA{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: 1,
		}, ""
	}

	return parseHex(s, false)
}

func parseHex(digits string, prefixed bool) (RGBA, string) {
	switch len(digits) {
	case 3, 6, 8:
	case 4:
		if !prefixed {
			return RGBA{}, "unrecognized color"
		}
	default:
		if prefixed {
			return RGBA{}, "hex color must have 3, 4, 6 or 8 digits"
		}
		return RGBA{}, "unrecognized color"
	}

	for _, r := range digits {
		if !isHexDigit(r) {
			if prefixed {
				return RGBA{}, "hex color contains a non-hex digit"
			}
			return RGBA{}, "unrecognized color"
		}
	}

	if len(digits) <= 4 {
		expanded := make([]byte, 0, len(digits)*2)
		for i := 0; i < len(digits); i++ {
			expanded = append(expanded, digits[i], digits[i])
		}
		digits = string(expanded)
	}

	channel := func(i int) float64 {
		v, _ := strconv.ParseUint(digits[i:i+2], 16, 8)
		return float64(v) / 255
	}

	c := RGBA{R: channel(0), G: channel(2), B: channel(4), A: 1}
	if len(digits) == 8 {
		c.A = channel(6)
	}
	return c, ""
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// functionArgs splits "name(a, b, c)" or "name(a b c / d)" into its arguments.
// The alpha component, when present, is always the fourth element.
func functionArgs(s string, names ...string) ([]string, string) {
	var rest string
	for _, name := range names {
		if strings.HasPrefix(s, name+"(") {
			rest = s[len(name)+1:]
			break
		}
	}
	if rest == "" {
		return nil, "unrecognized color function"
	}
	if !strings.HasSuffix(rest, ")") {
		return nil, "missing closing parenthesis"
	}
	inner := strings.TrimSpace(rest[:len(rest)-1])
	if inner == "" {
		return nil, "color function has no arguments"
	}

	var args []string
	if strings.Contains(inner, ",") {
		if strings.Contains(inner, "/") {
			return nil, "cannot mix comma and slash syntax"
		}
		for _, part := range strings.Split(inner, ",") {
			args = append(args, strings.TrimSpace(part))
		}
	} else {
		main, alpha, hasAlpha := strings.Cut(inner, "/")
		args = strings.Fields(main)
		if hasAlpha {
			if len(args) != 3 {
				return nil, "expected three components before alpha"
			}
			alpha = strings.TrimSpace(alpha)
			if alpha == "" || strings.Contains(alpha, "/") {
				return nil, "malformed alpha component"
			}
			args = append(args, alpha)
		}
	}

	if len(args) != 3 && len(args) != 4 {
		return nil, "expected three or four components"
	}
	for _, arg := range args {
		if arg == "" {
			return nil, "empty component"
		}
	}
	return args, ""
}

func parseRGB(args []string) (RGBA, string) {
	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, reason := parseRGBChannel(args[i])
		if reason != "" {
			return RGBA{}, reason
		}
		channels[i] = v
	}

	alpha := 1.0
	if len(args) == 4 {
		a, reason := parseAlpha(args[3])
		if reason != "" {
			return RGBA{}, reason
		}
		alpha = a
	}

	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, ""
}

func parseRGBChannel(arg string) (float64, string) {
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, ok := parseNumber(pct)
		if !ok || v < 0 || v > 100 {
			return 0, "rgb percentage out of range"
		}
		return v / 100, ""
	}
	v, ok := parseNumber(arg)
	if !ok || v < 0 || v > 255 {
		return 0, "rgb channel out of range"
	}
	return v / 255, ""
}

func parseHSL(args []string) (RGBA, string) {
	hue, reason := parseHue(args[0])
	if reason != "" {
		return RGBA{}, reason
	}
	sat, reason := parsePercentComponent(args[1], "saturation")
	if reason != "" {
		return RGBA{}, reason
	}
	light, reason := parsePercentComponent(args[2], "lightness")
	if reason != "" {
		return RGBA{}, reason
	}

	alpha := 1.0
	if len(args) == 4 {
		a, reason := parseAlpha(args[3])
		if reason != "" {
			return RGBA{}, reason
		}
		alpha = a
	}

	c := colorful.Hsl(hue, sat, light).Clamped()
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, ""
}

func parseHue(arg string) (float64, string) {
	scale := 1.0
	for _, unit := range []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	} {
		if trimmed, ok := strings.CutSuffix(arg, unit.suffix); ok {
			arg = trimmed
			scale = unit.scale
			break
		}
	}

	v, ok := parseNumber(arg)
	if !ok {
		return 0, "malformed hue"
	}
	hue := math.Mod(v*scale, 360)
	if hue < 0 {
		hue += 360
	}
	return hue, ""
}

func parsePercentComponent(arg, name string) (float64, string) {
	arg, _ = strings.CutSuffix(arg, "%")
	v, ok := parseNumber(arg)
	if !ok || v < 0 || v > 100 {
		return 0, name + " out of range"
	}
	return v / 100, ""
}

func parseAlpha(arg string) (float64, string) {
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, ok := parseNumber(pct)
		if !ok || v < 0 || v > 100 {
			return 0, "alpha out of range"
		}
		return v / 100, ""
	}
	v, ok := parseNumber(arg)
	if !ok || v < 0 || v > 1 {
		return 0, "alpha out of range"
	}
	return v, ""
}

// parseNumber accepts plain decimal numbers only.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+' && r != 'e' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// cssExtras holds CSS Color 4 keywords missing from the SVG 1.1 list.
var cssExtras = map[string]color.RGBA{
	"rebeccapurple": {R: 0x66, G: 0x33, B: 0x99, A: 0xff},
}

func lookupName(name string) (color.RGBA, bool) {
	if c, ok := cssExtras[name]; ok {
		return c, true
	}
	c, ok := colornames.Map[name]
	return c, ok
}
