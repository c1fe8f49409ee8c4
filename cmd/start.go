package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-insights/core/loader"
	"catalog-insights/core/logger"
	"catalog-insights/core/middleware/auth"
	"catalog-insights/core/middleware/rayid"

	"catalog-insights/feature/catalog"
	"catalog-insights/feature/deployments"
	"catalog-insights/feature/export"
	"catalog-insights/feature/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-insights/docs/swagger"
)

// @title Catalog Insights API
// @version 1.0
// @description Reconciliation reports over catalog items, deployments and resources.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog insights server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and platform client
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Optional export targets (storage, database)
		writer := rt.exportWriter(cmd.Context())

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           rt.cfg.Server.ReadTimeout(),
			WriteTimeout:          rt.cfg.Server.RequestTimeout(),
		})

		// 4. Initialize Feature Loader
		reportSvc := rt.reportService()
		mgr := loader.NewManager(logg)
		mgr.Register(catalog.NewFeature(rt.platform, logg))
		mgr.Register(deployments.NewFeature(rt.platform, logg))
		mgr.Register(reports.NewFeature(reportSvc))
		mgr.Register(export.NewFeature(reportSvc, writer, logg))

		// RayID first so every log line can be traced
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

		// Public endpoints
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		if rt.cfg.Metrics.Enabled {
			app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))
		}
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Everything registered below requires the API key
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))
		if rt.cfg.Server.ApiKey == "" {
			logg.Warn("No API key configured, the API is unprotected")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", rt.cfg.Server.Port),
				zap.String("platform", rt.cfg.Platform.BaseURL),
				zap.Bool("uploads", writer.CanUpload()),
			)
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
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
