package cli

import (
	"expense-manager/internal/database"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

func (app *App) newPurgeTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-tokens",
		Short: "Remove revoked tokens that have expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.loadConfig()

			db, err := database.New(&cfg.Database, logger.Silent)
			if err != nil {
				return err
			}
			defer db.Close()

			cleanup := services.NewTokenCleanupService(
				repositories.NewBlacklistedTokenRepository(db.DB),
				services.NewPrometheusMetrics(prometheus.NewRegistry()),
			)

			deleted, err := cleanup.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}

			pterm.Success.WithWriter(app.out).Printfln("Removed %d expired revoked tokens", deleted)
			return nil
		},
	}
}
