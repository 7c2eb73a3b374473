package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmoreno/cadet/internal/plan"
)

var (
	parseUseAI bool
	parseJSON  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <instruction>",
	Short: "Parse an instruction without building anything",
	Long:  `Parse a natural-language instruction into structured commands and print the build plan. Nothing is persisted or exported.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		instruction := strings.Join(args, " ")
		interp := newInterpreter(cfg, logger)
		commands := interp.ParseAll(context.Background(), instruction, parseUseAI && cfg.AI.Enabled)

		if parseJSON {
			out, err := json.MarshalIndent(commands, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode commands: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		for i, c := range commands {
			if len(commands) > 1 {
				fmt.Printf("Operation %d (%s):\n", i+1, c.Source)
			} else {
				fmt.Printf("Parsed (%s):\n", c.Source)
			}
			for _, step := range plan.Render(c) {
				fmt.Printf("  - %s\n", step)
			}
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseUseAI, "ai", false, "Use the model-backed parser when configured")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print parsed commands as JSON")
}
