// Package cli holds the agent-console command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alanyang/agent-console/internal/config"
)

var (
	cfgFile string

	// loaded by the root PersistentPreRunE
	cfg config.Config
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent-console",
		Short: "Agent management console server",
		Long:  "agent-console serves the agent dashboard API, live console updates over WebSocket and an MCP endpoint.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if err := config.Check(&cfg); err != nil {
				return err
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Logging))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); defaults apply when empty or missing")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	return err
}
