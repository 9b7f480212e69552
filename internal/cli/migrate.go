package cli

import (
	"database/sql"
	"fmt"

	"expense-manager/internal/database"

	_ "github.com/lib/pq"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func (app *App) newMigrateCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.loadConfig()

			db, err := openSQL(cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			runner := database.NewMigrationRunner(db, cfg.Database.MigrationsPath, cfg.Database.SeedsPath, seed || cfg.Database.Seed)
			if err := runner.Migrate(cmd.Context()); err != nil {
				return err
			}

			pterm.Success.WithWriter(app.out).Println("Database schema is up to date")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load the seed scripts after migrating")

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.loadConfig()

			db, err := openSQL(cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			version, dirty, err := database.NewMigrationRunner(db, cfg.Database.MigrationsPath, cfg.Database.SeedsPath, false).Status()
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			pterm.Info.WithWriter(app.out).Printfln("Version: %d, dirty: %v", version, dirty)
			return nil
		},
	})

	return cmd
}

func openSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
