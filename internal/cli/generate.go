package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmoreno/cadet/internal/geometry"
	"github.com/rmoreno/cadet/internal/plan"
)

var (
	generateUseAI  bool
	generateFormat string
	generateOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate <instruction>",
	Short: "Build a model from an instruction and export it",
	Long:  `Parse an instruction, build the mesh model, and export it to the outputs directory.`,
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

		format, err := geometry.ParseFormat(generateFormat)
		if err != nil {
			return err
		}

		outDir := generateOut
		if outDir == "" {
			outDir = cfg.Storage.OutputsDir
		}

		instruction := strings.Join(args, " ")
		interp := newInterpreter(cfg, logger)
		command := interp.Parse(context.Background(), instruction, generateUseAI && cfg.AI.Enabled)

		mesh, err := geometry.Build(command)
		if err != nil {
			return fmt.Errorf("failed to build model: %w", err)
		}

		exporter := geometry.NewExporter(outDir, logger)
		name, err := exporter.Export(mesh, format, "model")
		if err != nil {
			return fmt.Errorf("failed to export model: %w", err)
		}

		for _, step := range plan.Render(command) {
			fmt.Printf("  - %s\n", step)
		}
		fmt.Printf("Exported %s\n", name)
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateUseAI, "ai", false, "Use the model-backed parser when configured")
	generateCmd.Flags().StringVar(&generateFormat, "format", "stl", "Export format (stl or obj)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "Output directory (defaults to the configured outputs dir)")
}
