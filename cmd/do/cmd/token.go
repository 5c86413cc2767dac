package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/goalmaster/internal/config"
	"github.com/templui/goalmaster/internal/db"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/service"
)

// TokenCmd prints a bearer token for an existing account, for local curl sessions.
func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <email>",
		Short: "Issue an access token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer database.Close()

			email := strings.ToLower(strings.TrimSpace(args[0]))

			users := repository.NewUserRepository(database)
			user, err := users.ByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("failed to find user %s: %w", email, err)
			}

			auth := service.NewAuthService(users, nil, cfg.JWTSecret, cfg.JWTExpiry)
			token, err := auth.IssueToken(user.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
