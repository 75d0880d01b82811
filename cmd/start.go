package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"broad-babel/core/loader"
	"broad-babel/core/logger"
	"broad-babel/core/middleware/auth"
	"broad-babel/core/middleware/rayid"
	"broad-babel/feature/export"
	"broad-babel/feature/integrity"
	"broad-babel/feature/lookup"
	"broad-babel/feature/translate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "broad-babel/docs/swagger"
)

// @title broad-babel API
// @version 1.0
// @description Translate JUMP identifiers between naming schemes.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the broad-babel server",
	Long:  `Retrieves the lookup database if needed, then starts the HTTP server with all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger, storage, source
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		zap.ReplaceGlobals(a.logger)

		// 2. Metrics registry
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		// 3. Lookup database (required)
		if err := a.connect(cmd.Context(), reg); err != nil {
			return err
		}

		// 4. HTTP app with features
		server, err := newServer(a, reg)
		if err != nil {
			return err
		}

		// 5. Start server
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			errCh <- server.Listen(a.cfg.Server.Address())
		}()

		// 6. Graceful shutdown
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}
		a.logger.Info("Shutting down server...")
		return server.ShutdownWithContext(context.Background())
	},
}

// newServer builds the fiber app: ray id, request logging, public docs and
// metrics, then the API key check in front of every feature.
func newServer(a *app, reg *prometheus.Registry) (*fiber.App, error) {
	server := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
	})

	// RayID first so every log line can be traced
	server.Use(rayid.New())

	server.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(a.logger, c)
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

	// Public
	server.Get("/swagger/*", swagger.HandlerDefault)
	server.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	server.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))
	if !a.cfg.Server.AuthEnabled() {
		a.logger.Warn("No API key configured, the API is open")
	}

	mgr := loader.NewManager()
	mgr.Register(lookup.NewFeature(a.engine, a.logger))
	mgr.Register(translate.NewFeature(a.engine, a.logger))
	mgr.Register(export.NewFeature(export.New(a.db, a.store, a.cfg.Storage.Bucket, a.logger), a.logger, a.cfg.Server.ExportEnabled))
	mgr.Register(integrity.NewFeature(integrity.NewService(a.db, a.engine.Schema().Table(), a.fetcher,
		a.store, a.cfg.Storage.Bucket, a.sourceObjects(), a.logger)))

	loaded, err := mgr.LoadAll(server)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Features loaded", zap.Strings("features", loaded))

	return server, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
