// Package cli defines the cadet command tree.
package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/ai"
	"github.com/rmoreno/cadet/internal/config"
	"github.com/rmoreno/cadet/internal/logging"
	"github.com/rmoreno/cadet/internal/parser"
	"github.com/rmoreno/cadet/internal/version"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:     "cadet",
	Short:   "Turn natural-language manufacturing instructions into CAD commands",
	Long:    `Cadet parses manufacturing instructions like "create 4 holes of 5mm in a circular pattern" into structured CAD commands, renders build plans, and generates mesh models.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cadet.yaml", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Logging.Level, debug)
}

// newInterpreter builds the interpreter, wiring the model-backed path
// only when it is enabled and has an API key.
func newInterpreter(cfg *config.Config, logger *zap.Logger) *parser.Interpreter {
	var client parser.AIParser
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client = ai.NewClient(ai.Config{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.ParseTimeout(20 * time.Second),
		}, logger)
	}
	return parser.NewInterpreter(client, logger)
}
