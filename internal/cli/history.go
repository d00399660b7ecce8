package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/colorvault/internal/db"
	"github.com/opencode-ai/colorvault/internal/models"
)

var (
	historyLimit int
	historyType  string
	historySince time.Duration
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum events to show")
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "", "filter by event type (e.g. collection.committed)")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only events newer than this (e.g. 24h)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent collection activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		query := db.EventQuery{Limit: historyLimit}
		if historyType != "" {
			t := models.EventType(historyType)
			query.Type = &t
		}
		if historySince > 0 {
			since := time.Now().Add(-historySince)
			query.Since = &since
		}

		list, err := a.events.List(ctx, query)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(os.Stdout, "No activity recorded.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for _, event := range list {
			rows = append(rows, []string{
				event.Timestamp.Local().Format("2006-01-02 15:04:05"),
				string(event.Type),
				event.EntityID,
				summarizePayload(event.Payload),
			})
		}
		return writeTable(os.Stdout, []string{"TIME", "TYPE", "ENTITY", "DETAILS"}, rows)
	},
}

func summarizePayload(payload json.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return string(payload)
	}

	parts := make([]string, 0, len(fields))
	for _, key := range []string{"name", "colors", "palette_ids", "persisted", "source", "error", "context"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if list, ok := value.([]any); ok {
			value = fmt.Sprintf("%d palettes", len(list))
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}
	return strings.Join(parts, " ")
}
