package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-sync/core/loader"
	"library-sync/core/logger"
	"library-sync/core/metrics"
	"library-sync/core/middleware/auth"
	synclimit "library-sync/core/middleware/ratelimit"
	"library-sync/core/middleware/rayid"

	"library-sync/feature/integrity"
	"library-sync/feature/mapping"
	"library-sync/feature/syncer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "library-sync/docs/swagger"
)

// @title Library Sync API
// @version 1.0
// @description API for syncing platform game libraries into a unified library.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the library sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and backends
		svc, err := loadServices(context.Background())
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer svc.Close()
		logg := svc.logger
		defer logg.Sync()
		cfg := svc.cfg

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 3. Per-user budget for sync triggers
		limiter := synclimit.New(synclimit.Config{PerHour: cfg.Server.SyncRequestsPerHour}, logg)
		defer limiter.Stop()

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(syncer.NewFeature(svc.orchestrator, limiter.Handler()))
		mgr.Register(mapping.NewFeature(svc.mappings))
		mgr.Register(integrity.NewFeature(svc.store, svc.db, logg, integrityConfig(cfg)))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 2.5 Swagger Documentation and metrics (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler(svc.registry))

		// 3. Auth (Protect API)
		if !cfg.Server.IsProtected() {
			logg.Warn("No API key configured, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.ListenAddr()))
			if err := app.Listen(cfg.Server.ListenAddr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
