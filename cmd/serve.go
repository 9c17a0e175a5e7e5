package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"asset-cloner/core/loader"
	"asset-cloner/core/logger"
	"asset-cloner/core/middleware/auth"
	"asset-cloner/core/middleware/rayid"
	"asset-cloner/feature/clone"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-cloner/docs/swagger"
)

// @title Asset Cloner API
// @version 1.0
// @description API for cloning weapon costumes and skins into new game assets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the clone API server",
	Long:  `Starts the HTTP server, indexes the game data and mounts every enabled feature.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// the run ledger is optional
		var ledger clone.Ledger
		if repo := openLedger(ctx, cfg.Database, logg); repo != nil {
			ledger = repo
			logg.Info("Recording clone runs", zap.String("driver", cfg.Database.Driver))
		}

		svc := clone.NewService(cfg.Game, afero.NewOsFs(), logg, ledger)
		if _, err := svc.Dataset(ctx); err != nil {
			// POST /dataset/reload retries once the installation is fixed
			logg.Warn("Game data not loaded", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(clone.NewFeature(svc))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
