package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/colors"
	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/palettes"
	"github.com/opencode-ai/colorvault/internal/session"
)

var (
	listSource string
	listTag    string

	addName   string
	addColors []string
	addTags   []string

	editName   string
	editColors []string
	editTags   []string

	deleteYes bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)

	listCmd.Flags().StringVar(&listSource, "source", "", "filter by source (builtin, user)")
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by tag")

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "palette name")
	addCmd.Flags().StringSliceVarP(&addColors, "color", "c", nil, "color (repeatable; hex, rgb(), hsl() or a CSS name)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tag (repeatable)")

	editCmd.Flags().StringVarP(&editName, "name", "n", "", "new palette name")
	editCmd.Flags().StringSliceVarP(&editColors, "color", "c", nil, "replacement colors (repeatable)")
	editCmd.Flags().StringSliceVarP(&editTags, "tag", "t", nil, "replacement tags (repeatable)")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List palettes",
	Long:    "List the active collection: the built-in catalog, or your saved palettes once you have saved any.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		collection := filterPalettes(a.load(ctx), listSource, listTag)

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, collection)
		}
		if len(collection) == 0 {
			fmt.Fprintln(os.Stdout, "No palettes found.")
			return nil
		}

		rows := make([][]string, 0, len(collection))
		for i, p := range collection {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				p.Name,
				formatSource(p.Source),
				truncateList(clipboardColors(p), a.cfg.UI.SwatchLimit),
				strings.Join(p.Tags, ","),
				p.ID,
			})
		}
		return writeTable(os.Stdout, []string{"#", "NAME", "SOURCE", "COLORS", "TAGS", "ID"}, rows)
	},
}

func filterPalettes(collection []models.Palette, source, tag string) []models.Palette {
	source = strings.TrimSpace(source)
	tag = strings.TrimSpace(tag)
	if source == "" && tag == "" {
		return collection
	}
	out := make([]models.Palette, 0, len(collection))
	for _, p := range collection {
		if source != "" && !strings.EqualFold(string(p.Source), source) {
			continue
		}
		if tag != "" && !hasTag(p, tag) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasTag(p models.Palette, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func clipboardColors(p models.Palette) []string {
	values := p.ColorValues()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = colors.ClipboardText(v)
	}
	return out
}

// ColorDetail describes one color of a palette.
type ColorDetail struct {
	Input     string  `json:"input"`
	Label     string  `json:"label,omitempty"`
	Valid     bool    `json:"valid"`
	Hex       string  `json:"hex,omitempty"`
	RGB       string  `json:"rgb,omitempty"`
	Luminance float64 `json:"luminance"`
	TextColor string  `json:"text_color"`
}

// PaletteDetail is the payload of `colorvault show`.
type PaletteDetail struct {
	models.Palette
	Position int           `json:"position"`
	Details  []ColorDetail `json:"details"`
}

func describeColor(input, label string) ColorDetail {
	detail := ColorDetail{
		Input:     input,
		Label:     label,
		Valid:     colors.IsValid(input),
		Luminance: colors.Luminance(input),
		TextColor: colors.TextColorFor(input),
	}
	if detail.Valid {
		detail.Hex, _ = colors.ToCanonicalHex(input)
		detail.RGB, _ = colors.ToRGB(input)
	}
	return detail
}

var showCmd = &cobra.Command{
	Use:   "show <id|position|name>",
	Short: "Show a palette with per-color details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		p, idx, err := findPalette(a.load(ctx), args[0])
		if err != nil {
			return err
		}

		detail := PaletteDetail{Palette: p, Position: idx + 1}
		for _, entry := range p.Colors {
			detail.Details = append(detail.Details, describeColor(entry.Value(), entry.Label()))
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, detail)
		}

		fmt.Fprintf(os.Stdout, "%s (%s)\n", p.Name, formatSource(p.Source))
		fmt.Fprintf(os.Stdout, "ID:       %s\n", p.ID)
		fmt.Fprintf(os.Stdout, "Position: %d\n", idx+1)
		if len(p.Tags) > 0 {
			fmt.Fprintf(os.Stdout, "Tags:     %s\n", strings.Join(p.Tags, ", "))
		}
		fmt.Fprintln(os.Stdout)

		rows := make([][]string, 0, len(detail.Details))
		for _, d := range detail.Details {
			rows = append(rows, []string{
				colors.ClipboardText(d.Input),
				d.RGB,
				fmt.Sprintf("%.3f", d.Luminance),
				d.TextColor,
				d.Label,
			})
		}
		return writeTable(os.Stdout, []string{"HEX", "RGB", "LUMINANCE", "TEXT", "LABEL"}, rows)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a palette",
	Long: `Add a palette to the end of the collection.

Without --color the palette starts from the default colors.`,
	Example: `  colorvault add --name Sunset --color "#ff5e5b" --color "rgb(255, 237, 102)" --color coral
  colorvault add -n Mono -c black -c gray -c white -t neutral`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		draft := palettes.NewDraft()
		draft.Name = addName
		if len(addColors) > 0 {
			draft.Colors = addColors
		}

		p, err := palettes.Build(draft)
		if err != nil {
			return err
		}
		p.Tags = normalizeTags(addTags)

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.edit(ctx, func(c *session.Controller) error {
			return c.AddPalette(p)
		}); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, p)
		}
		fmt.Fprintf(os.Stdout, "Palette %q added (ID: %s)\n", p.Name, p.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id|position|name>",
	Short: "Rename a palette or replace its colors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if editName == "" && len(editColors) == 0 && !cmd.Flags().Changed("tag") {
			return errors.New("nothing to change: pass --name, --color or --tag")
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		existing, _, err := findPalette(a.load(ctx), args[0])
		if err != nil {
			return err
		}

		draft := palettes.DraftFrom(existing)
		if editName != "" {
			draft.Name = editName
		}
		if len(editColors) > 0 {
			draft.Colors = editColors
		}
		p, err := palettes.Build(draft)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("tag") {
			p.Tags = normalizeTags(editTags)
		}

		if _, err := a.edit(ctx, func(c *session.Controller) error {
			return c.ReplacePalette(p)
		}); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, p)
		}
		fmt.Fprintf(os.Stdout, "Palette %q updated\n", p.Name)
		return nil
	},
}

func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	return out
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id|position|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a palette",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		p, _, err := findPalette(a.load(ctx), args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			if IsNonInteractive() {
				return &PreflightError{
					Message:  "delete needs confirmation",
					Hint:     "Pass --yes to delete without a prompt",
					NextStep: fmt.Sprintf("colorvault delete %s --yes", p.ID),
				}
			}
			if !confirm(fmt.Sprintf("Are you sure you want to delete %q?", p.Name)) {
				return errors.New("delete aborted")
			}
		}

		if _, err := a.edit(ctx, func(c *session.Controller) error {
			return c.DeletePalette(p.ID)
		}); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Palette %q deleted\n", p.Name)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a palette to another position",
	Long:  "Move the palette at one 1-based position to another; the palettes in between shift by one.",
	Example: `  # Move the third palette to the top
  colorvault move 3 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.edit(ctx, func(c *session.Controller) error {
			return c.Move(from-1, to-1)
		}); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, models.PaletteIDs(a.ctrl.Displayed()))
		}
		fmt.Fprintf(os.Stdout, "Moved palette %d to position %d\n", from, to)
		return nil
	},
}

func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number starting at 1", arg)
	}
	return pos, nil
}

// loadForRead is a read-only helper for commands that only inspect the collection.
func loadForRead(ctx context.Context) ([]models.Palette, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.load(ctx), nil
}
