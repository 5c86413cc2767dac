package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goalmaster/internal/config"
	"github.com/templui/goalmaster/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations for DB_DRIVER / DB_CONNECTION",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateSubCmd("down", "Roll back the most recent migration", db.RollbackMigration),
		migrateSubCmd("status", "Show applied and pending migrations", db.MigrationStatus),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer database.Close()

			return run(database.DB, cfg.DBDriver)
		},
	}
}
