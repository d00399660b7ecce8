package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/theme"
	"github.com/opencode-ai/colorvault/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the palette gallery",
	Long:  "Launch the colorvault terminal user interface (TUI).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "colorvault list",
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// Polling stops when the TUI drops its subscription.
	signal := theme.NewTerminalSignal(theme.DefaultPollInterval)

	return tui.Run(ctx, tui.Options{
		Controller:  a.ctrl,
		Load:        a.palettes.Load,
		Consent:     a.consent,
		Preference:  a.theme,
		Signal:      signal,
		SwatchLimit: a.cfg.UI.SwatchLimit,
	})
}
