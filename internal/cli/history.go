package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmoreno/cadet/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously parsed instructions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		history, err := store.OpenHistory(cfg.Storage.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer history.Close()

		records, err := history.List(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No commands recorded yet.")
			return nil
		}

		for _, r := range records {
			fmt.Printf("%s  %-15s %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Action, r.Prompt)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to show")
}
