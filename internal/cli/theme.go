package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/models"
	"github.com/opencode-ai/colorvault/internal/theme"
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
}

// ThemeStatus is the payload of `colorvault theme get`.
type ThemeStatus struct {
	Preference    models.Theme `json:"preference"`
	Resolved      models.Theme `json:"resolved"`
	ToggleEnabled bool         `json:"toggle_enabled"`
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the theme preference and what it resolves to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		pref := a.theme.Current(ctx)
		status := ThemeStatus{
			Preference:    pref,
			Resolved:      theme.Resolve(pref, terminalSignal()),
			ToggleEnabled: a.theme.Enabled(),
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, status)
		}
		fmt.Fprintf(os.Stdout, "Theme:    %s\n", status.Preference)
		fmt.Fprintf(os.Stdout, "Resolved: %s\n", status.Resolved)
		fmt.Fprintf(os.Stdout, "Toggle:   %s\n", formatYesNo(status.ToggleEnabled))
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Store the theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark), string(models.ThemeSystem)},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, ok := models.ParseTheme(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q: use light, dark or system", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.theme.Set(ctx, t); err != nil {
			if errors.Is(err, theme.ErrToggleDisabled) {
				return &PreflightError{
					Message:  err.Error(),
					Hint:     "Set ui.theme_toggle_enabled: true in the config file or COLORVAULT_UI_THEME_TOGGLE_ENABLED=true",
					NextStep: "colorvault theme get",
				}
			}
			return err
		}

		fmt.Fprintf(os.Stdout, "Theme set to %s\n", t)
		return nil
	},
}

// terminalSignal returns the ambient dark-background signal when a terminal
// is attached.
func terminalSignal() theme.Signal {
	if !hasTTY() {
		return theme.StaticSignal(false)
	}
	return theme.NewTerminalSignal(0)
}
