package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/session"
	"github.com/opencode-ai/colorvault/internal/transfer"
)

var (
	exportFormat string
	exportOut    string
	exportSource string

	importFormat  string
	importReplace bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json, yaml or xlsx (default from --out, else json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, or - for stdout")
	exportCmd.Flags().StringVar(&exportSource, "source", "", "only export palettes from this source (builtin, user)")

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "json, yaml or xlsx (default from the file extension)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the collection instead of appending")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the palette collection",
	Long: `Export the active collection as a versioned snapshot.

JSON and YAML carry every palette field; xlsx writes one row per palette with
filled color cells.`,
	Example: `  colorvault export > palettes.json
  colorvault export --out palettes.xlsx
  colorvault export --format yaml --source user`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format, err := resolveTransferFormat(exportFormat, exportOut)
		if err != nil {
			return err
		}
		if format == transfer.FormatXLSX && exportOut == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
			return &PreflightError{
				Message:  "refusing to write a spreadsheet to the terminal",
				Hint:     "Redirect stdout or pass --out",
				NextStep: "colorvault export --out palettes.xlsx",
			}
		}

		collection, err := loadForRead(ctx)
		if err != nil {
			return err
		}
		collection = filterPalettes(collection, exportSource, "")

		step := startProgress(fmt.Sprintf("Exporting %d palettes", len(collection)))
		if err := writeExport(exportOut, collection, format); err != nil {
			step.Fail(err)
			return err
		}
		step.Done()
		return nil
	},
}

func resolveTransferFormat(flag, path string) (transfer.Format, error) {
	if flag != "" {
		return transfer.ParseFormat(flag)
	}
	if path == "" || path == "-" {
		return transfer.FormatJSON, nil
	}
	return transfer.FormatForPath(path)
}

func writeExport(out string, collection []models.Palette, format transfer.Format) (err error) {
	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return transfer.Export(w, collection, format)
}

// ImportResult is the payload of `colorvault import`.
type ImportResult struct {
	Imported  []models.Palette `json:"imported"`
	Replaced  bool             `json:"replaced"`
	Persisted bool             `json:"persisted"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import palettes from a file",
	Long: `Import palettes from a JSON, YAML or xlsx file. Every palette is
validated, its colors normalized to hex, and it is saved as a new user palette.
Use - to read JSON or YAML from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]
		format, err := resolveTransferFormat(importFormat, path)
		if err != nil {
			return err
		}

		var r io.Reader = os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()
			r = f
		}

		imported, err := transfer.Import(r, format)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.edit(ctx, func(c *session.Controller) error {
			if importReplace {
				for _, p := range c.Displayed() {
					if err := c.DeletePalette(p.ID); err != nil {
						return err
					}
				}
			}
			for _, p := range imported {
				if err := c.AddPalette(p); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, ImportResult{Imported: imported, Replaced: importReplace, Persisted: result.Persisted})
		}
		fmt.Fprintf(os.Stdout, "Imported %d palettes\n", len(imported))
		return nil
	},
}
