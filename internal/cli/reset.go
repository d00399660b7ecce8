package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation")
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved palettes and return to the built-in catalog",
	Long:  "Delete the saved collection. Consent and the theme preference are kept.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !resetYes {
			if IsNonInteractive() {
				return &PreflightError{
					Message:  "reset needs confirmation",
					Hint:     "Pass --yes to reset without a prompt",
					NextStep: "colorvault reset --yes",
				}
			}
			if !confirm("Delete all saved palettes?") {
				return errors.New("reset aborted")
			}
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		a.palettes.Clear(ctx)
		if _, ok := a.palettes.LoadUser(ctx); ok {
			return errors.New("saved palettes could not be removed")
		}

		fmt.Fprintln(os.Stdout, "Saved palettes removed. The built-in catalog is active again.")
		return nil
	},
}
