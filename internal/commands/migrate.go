package commands

import (
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	migrateDown    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  "Apply pending schema migrations to the configured PostgreSQL database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Type != "postgres" {
			return fmt.Errorf("migrations require database.type=postgres, got %q", cfg.Database.Type)
		}

		m, err := migrate.New("file://"+migrationsPath, cfg.Database.Postgres.ConnString())
		if err != nil {
			return fmt.Errorf("failed to initialize migrations: %w", err)
		}
		defer m.Close()

		if migrateDown {
			if err := m.Down(); err != nil && err != migrate.ErrNoChange {
				return fmt.Errorf("failed to roll back migrations: %w", err)
			}
			slog.Info("migrations rolled back")
			return nil
		}

		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "path to migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back all migrations")
}
