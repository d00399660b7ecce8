package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.AddCommand(colorCheckCmd)
}

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Color utilities",
}

var colorCheckCmd = &cobra.Command{
	Use:   "check <color>...",
	Short: "Validate and normalize colors",
	Long: `Validate colors and print their canonical forms.

Accepted: #rgb, #rgba, #rrggbb, #rrggbbaa (with or without #), rgb()/rgba(),
hsl()/hsla() and CSS color names. Exits with an error if any input is invalid.`,
	Example: `  colorvault color check "#E69F00" "hsl(200, 60%, 50%)" rebeccapurple`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		details := make([]ColorDetail, 0, len(args))
		invalid := 0
		for _, arg := range args {
			d := describeColor(arg, "")
			if !d.Valid {
				invalid++
			}
			details = append(details, d)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(os.Stdout, details); err != nil {
				return err
			}
		} else {
			rows := make([][]string, 0, len(details))
			for _, d := range details {
				rows = append(rows, []string{
					d.Input,
					formatColorValidity(d.Valid),
					d.Hex,
					d.RGB,
					fmt.Sprintf("%.3f", d.Luminance),
					d.TextColor,
				})
			}
			if err := writeTable(os.Stdout, []string{"INPUT", "VALID", "HEX", "RGB", "LUMINANCE", "TEXT"}, rows); err != nil {
				return err
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d colors are invalid", invalid, len(args))
		}
		return nil
	},
}
