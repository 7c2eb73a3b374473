package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmoreno/cadet/internal/tui"
)

var watchServerURL string

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Watch a build job's progress",
	Long:  `Poll a running build job on the server and render its progress until it finishes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL := watchServerURL
		if serverURL == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			host := cfg.Server.Host
			if host == "0.0.0.0" || host == "" {
				host = "localhost"
			}
			serverURL = fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
		}

		return tui.Run(serverURL, args[0])
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchServerURL, "server", "", "Server base URL (defaults to the configured listen address)")
}
