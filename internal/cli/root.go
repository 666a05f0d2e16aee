// Package cli defines the catalog command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"catalog-service/internal/config"
	"catalog-service/internal/infrastructure/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalog service",
		Long:          "Product catalog REST API with token auth and live change events over websockets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

func loadConfig(opts *RootOptions) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat), nil
}
