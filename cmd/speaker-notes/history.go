// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/speaker-notes/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the run history (list, export)",
	Long: `History reads the SQLite ledger of extraction runs. Runs are only
recorded when history.enabled is set in the config or
SPEAKER_NOTES_HISTORY_ENABLED=true.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent extraction runs",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-17s  %6s  %6s  %s\n", "Started", "Status", "Slides", "Notes", "Source -> Destination")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-17s  %6d  %6d  %s -> %s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Status, r.Slides, r.WithNotes, r.Source, r.Destination)
		if r.Error != "" {
			fmt.Fprintf(w, "%-20s  %s\n", "", r.Error)
		}
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the run history as YAML to stdout",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportYAML(context.Background(), cmd.OutOrStdout(), limit)
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum number of runs (default history.max_results)")
	historyExportCmd.Flags().Int("limit", 1000, "maximum number of runs")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
