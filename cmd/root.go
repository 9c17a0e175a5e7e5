package cmd

import (
	"context"
	"fmt"
	"os"

	"asset-cloner/core/config"
	"asset-cloner/core/database"
	"asset-cloner/core/logger"
	"asset-cloner/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-cloner",
	Short: "Clone weapon costumes and skins into new game assets",
	Long: `Asset Cloner copies a weapon costume or skin into a brand-new asset:
new table records, renamed streaming archives and localized strings.
It can also serve the engine over HTTP and publish outputs to S3 storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// console format at debug level gives ISO8601 timestamps for CLI users
		l := logger.Console()
		l.Error("aborted", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

// setup loads the configuration and builds the configured logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// openLedger connects the optional run ledger. It returns nil, after a
// warning, when the database is unavailable.
func openLedger(ctx context.Context, cfg database.Config, logg *zap.Logger) *history.Repository {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	repo := history.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		logg.Warn("Run ledger unavailable", zap.Error(err))
		return nil
	}
	logg.Debug("Connected to run ledger", zap.String("driver", cfg.Driver))
	return repo
}
