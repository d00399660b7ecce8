package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/preview"
	"github.com/opencode-ai/colorvault/internal/theme"
)

var (
	previewKind   string
	previewFormat string
	previewOut    string
	previewWidth  int
	previewHeight int
	previewDark   bool
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewKind, "kind", "k", string(preview.KindLine), "chart kind (line, bar, pie)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "", "image format (png, svg); defaults from --out or png")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output file, or - for stdout (default <name>-<kind>.<format>)")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "image width in pixels (default from config)")
	previewCmd.Flags().IntVar(&previewHeight, "height", 0, "image height in pixels (default from config)")
	previewCmd.Flags().BoolVar(&previewDark, "dark", false, "render on a dark background (default follows the theme)")
}

var previewCmd = &cobra.Command{
	Use:   "preview <id|position|name>",
	Short: "Render a sample chart in a palette's colors",
	Long: `Render a sample chart colored by the palette's first six colors.

Colors that do not parse are drawn in gray.`,
	Example: `  colorvault preview okabe-ito --kind bar --out okabe.png
  colorvault preview 2 --format svg --out - > chart.svg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kind, err := preview.ParseKind(previewKind)
		if err != nil {
			return err
		}
		format, err := resolvePreviewFormat(previewFormat, previewOut)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		p, _, err := findPalette(a.load(ctx), args[0])
		if err != nil {
			return err
		}

		opts := preview.Options{
			Kind:   kind,
			Format: format,
			Width:  a.cfg.Preview.Width,
			Height: a.cfg.Preview.Height,
			Dark:   previewDark,
		}
		if previewWidth > 0 {
			opts.Width = previewWidth
		}
		if previewHeight > 0 {
			opts.Height = previewHeight
		}
		if !cmd.Flags().Changed("dark") {
			opts.Dark = theme.Resolve(a.theme.Current(ctx), terminalSignal()) == models.ThemeDark
		}

		out := previewOut
		if out == "" {
			out = defaultPreviewName(p, kind, format)
		}

		step := startProgress(fmt.Sprintf("Rendering %s chart", kind))
		if err := writePreview(out, p, opts); err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		if out != "-" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		}
		return nil
	},
}

func resolvePreviewFormat(flag, out string) (preview.Format, error) {
	if flag != "" {
		return preview.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(out), "."); ext != "" && out != "-" {
		return preview.ParseFormat(ext)
	}
	return preview.FormatPNG, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

func defaultPreviewName(p models.Palette, kind preview.Kind, format preview.Format) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(p.Name), "-"), "-")
	if base == "" {
		base = "palette"
	}
	return fmt.Sprintf("%s-%s.%s", base, kind, format)
}

func writePreview(out string, p models.Palette, opts preview.Options) error {
	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	return preview.Render(w, p, opts)
}
