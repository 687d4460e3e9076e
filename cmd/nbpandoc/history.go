package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nbpandoc/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists recent conversion runs recorded in the local SQLite
history database, newest first. Recording is controlled by history.enabled
in the config file and the --no-history flag on conversion.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "no conversions recorded")
		return nil
	}

	for _, rec := range recs {
		line := fmt.Sprintf("%s  %-9s  %s -> %s (%s)",
			rec.ConvertedAt.Local().Format(time.DateTime),
			rec.Status, rec.Input, rec.Output, rec.Duration.Round(time.Millisecond))
		if rec.Error != "" {
			line += "  " + rec.Error
		}
		fmt.Println(line)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
