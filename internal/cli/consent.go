package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/events"
)

var consentRevokePurge bool

func init() {
	rootCmd.AddCommand(consentCmd)
	consentCmd.AddCommand(consentStatusCmd)
	consentCmd.AddCommand(consentGrantCmd)
	consentCmd.AddCommand(consentRevokeCmd)

	consentRevokeCmd.Flags().BoolVar(&consentRevokePurge, "purge", false, "also delete saved palettes")
}

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Manage permission to store palettes locally",
	Long: `Palettes you create or change are written to local storage only after
you grant consent. A grant lasts one year.`,
}

// ConsentStatus is the payload of `colorvault consent status`.
type ConsentStatus struct {
	Granted   bool       `json:"granted"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

var consentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether storage consent is granted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		status := ConsentStatus{}
		if expires, ok := a.consent.ExpiresAt(ctx); ok {
			status.Granted = true
			status.ExpiresAt = &expires
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, status)
		}
		fmt.Fprintf(os.Stdout, "Consent: %s\n", formatConsent(status.Granted))
		if status.ExpiresAt != nil {
			fmt.Fprintf(os.Stdout, "Expires: %s\n", status.ExpiresAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

var consentGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Allow local storage and save the current collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		a.load(ctx)
		saved, err := a.ctrl.AcceptConsent(ctx)
		if err != nil {
			return err
		}
		if !saved {
			fmt.Fprintln(os.Stderr, colorize("Warning: consent granted, but palettes could not be saved.", colorYellow))
			return nil
		}
		fmt.Fprintln(os.Stdout, "Consent granted. Palettes saved.")
		return nil
	},
}

var consentRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Withdraw storage consent",
	Long:  "Withdraw storage consent. Saved palettes are kept unless --purge is given; later changes are not saved.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.consent.Revoke(ctx); err != nil {
			return err
		}
		a.recorder.Record(ctx, func(ctx context.Context, repo events.Repository) error {
			return events.LogConsentChanged(ctx, repo, false)
		})
		if consentRevokePurge {
			a.palettes.Clear(ctx)
		}

		fmt.Fprintln(os.Stdout, "Consent revoked.")
		return nil
	},
}
