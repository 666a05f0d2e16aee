package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog-service/internal/infrastructure/db/postgres"
	"catalog-service/internal/server"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}

			db, err := server.OpenDatabase(cfg, logger)
			if err != nil {
				return err
			}
			defer postgres.Close(db)

			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DatabaseDriver)
			return nil
		},
	}
}
