// Package preview renders palettes as sample charts.
package preview

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
)

// Kind selects the chart type.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
)

// Kinds lists the supported chart types.
var Kinds = []Kind{KindLine, KindBar, KindPie}

// Format selects the output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// MaxSeries caps how many palette colors take part in a chart.
const MaxSeries = 6

// Preview errors.
var (
	ErrUnknownKind   = errors.New("unknown chart kind")
	ErrUnknownFormat = errors.New("unknown image format")
	ErrNoColors      = errors.New("palette has no colors")
)

// Categories label the sample data points.
var Categories = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// SampleSeries is deterministic sample data, one row per series.
var SampleSeries = [][]float64{
	{65, 59, 80, 81, 56, 55},
	{28, 48, 40, 19, 86, 27},
	{45, 25, 16, 36, 67, 78},
	{32, 72, 55, 42, 38, 65},
	{18, 35, 62, 78, 45, 52},
	{52, 68, 24, 58, 72, 41},
}

// Fallback is used for colors that do not parse.
var Fallback = drawing.Color{R: 128, G: 128, B: 128, A: 255}

// Options control rendering.
type Options struct {
	Kind   Kind
	Format Format
	Width  int
	Height int
	// Dark renders on a dark background.
	Dark bool
}

// ParseKind converts a flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// SeriesColors maps a palette's first MaxSeries colors to chart colors.
func SeriesColors(p models.Palette) []drawing.Color {
	n := len(p.Colors)
	if n > MaxSeries {
		n = MaxSeries
	}
	out := make([]drawing.Color, n)
	for i := 0; i < n; i++ {
		out[i] = toDrawing(p.Colors[i].Value())
	}
	return out
}

func toDrawing(text string) drawing.Color {
	c, err := colors.Parse(text)
	if err != nil {
		return Fallback
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

type theme struct {
	background drawing.Color
	text       drawing.Color
	grid       drawing.Color
}

func themeFor(dark bool) theme {
	if dark {
		return theme{
			background: drawing.Color{R: 0x1e, G: 0x1e, B: 0x24, A: 255},
			text:       drawing.Color{R: 0xe6, G: 0xe6, B: 0xea, A: 255},
			grid:       drawing.Color{R: 0x44, G: 0x44, B: 0x4c, A: 255},
		}
	}
	return theme{
		background: drawing.ColorWhite,
		text:       drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 255},
		grid:       drawing.Color{R: 0xdd, G: 0xdd, B: 0xdd, A: 255},
	}
}

// Render draws p as a sample chart to w.
func Render(w io.Writer, p models.Palette, opts Options) error {
	seriesColors := SeriesColors(p)
	if len(seriesColors) == 0 {
		return ErrNoColors
	}

	provider, err := rendererFor(opts.Format)
	if err != nil {
		return err
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	th := themeFor(opts.Dark)

	var renderable interface {
		Render(chart.RendererProvider, io.Writer) error
	}
	switch opts.Kind {
	case KindLine, "":
		renderable = lineChart(p, seriesColors, opts, th)
	case KindBar:
		renderable = barChart(seriesColors, opts, th)
	case KindPie:
		renderable = pieChart(seriesColors, opts, th)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}

	if err := renderable.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", opts.Kind, err)
	}
	return nil
}

func rendererFor(f Format) (chart.RendererProvider, error) {
	switch f {
	case FormatPNG, "":
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func seriesName(p models.Palette, i int) string {
	if label := p.Colors[i].Label(); label != "" {
		return label
	}
	return fmt.Sprintf("Series %d", i+1)
}

func lineChart(p models.Palette, seriesColors []drawing.Color, opts Options, th theme) *chart.Chart {
	xValues := make([]float64, len(Categories))
	ticks := make([]chart.Tick, len(Categories))
	for i, label := range Categories {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	series := make([]chart.Series, len(seriesColors))
	for i, c := range seriesColors {
		series[i] = chart.ContinuousSeries{
			Name:    seriesName(p, i),
			XValues: xValues,
			YValues: SampleSeries[i],
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    3,
			},
		}
	}

	graph := &chart.Chart{
		Title:  p.Name,
		Width:  opts.Width,
		Height: opts.Height,
		TitleStyle: chart.Style{
			FontColor: th.text,
		},
		Background: chart.Style{
			FillColor: th.background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: th.background,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{FontColor: th.text, StrokeColor: th.grid},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: th.text, StrokeColor: th.grid},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph, chart.Style{
		FillColor: th.background,
		FontColor: th.text,
	})}
	return graph
}

// barChart groups one bar per series under each category.
func barChart(seriesColors []drawing.Color, opts Options, th theme) *chart.BarChart {
	n := len(Categories) * len(seriesColors)
	barWidth := (opts.Width - 160) / (n * 2)
	if barWidth < 2 {
		barWidth = 2
	}

	bars := make([]chart.Value, 0, n)
	for ci, category := range Categories {
		for si, c := range seriesColors {
			label := ""
			if si == 0 {
				label = category
			}
			bars = append(bars, chart.Value{
				Label: label,
				Value: SampleSeries[si][ci],
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
	}

	return &chart.BarChart{
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{
			FillColor: th.background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: th.background,
		},
		XAxis: chart.Style{FontColor: th.text, StrokeColor: th.grid},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: th.text, StrokeColor: th.grid},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
}

// pieChart shows one slice per series, sized by the series total.
func pieChart(seriesColors []drawing.Color, opts Options, th theme) *chart.PieChart {
	values := make([]chart.Value, len(seriesColors))
	for i, c := range seriesColors {
		total := 0.0
		for _, v := range SampleSeries[i] {
			total += v
		}
		values[i] = chart.Value{
			Label: fmt.Sprintf("Series %d", i+1),
			Value: total,
			Style: chart.Style{
				FillColor:   c,
				StrokeColor: th.background,
				FontColor:   contrastText(c),
			},
		}
	}

	return &chart.PieChart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			FillColor: th.background,
		},
		Canvas: chart.Style{
			FillColor: th.background,
		},
		Values: values,
	}
}

func contrastText(c drawing.Color) drawing.Color {
	if colors.PreferLightText(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)) {
		return drawing.ColorWhite
	}
	return drawing.ColorBlack
}
