package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"catalog-service/internal/application/command"
	"catalog-service/internal/application/services"
	"catalog-service/internal/infrastructure/db/postgres"
	"catalog-service/internal/server"
)

// NewTokenCommand mints a token pair for an existing user, which is handy
// for poking at the API from a shell.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-uuid>",
		Short: "Issue an access and refresh token for a user",
		Args:  cobra.ExactArgs(1),
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

			userService := services.NewUserService(postgres.NewUserRepository(db), server.NewJWTService(cfg), logger)
			result, err := userService.IssueTokens(cmd.Context(), &command.IssueTokensCommand{UUID: args[0]})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
