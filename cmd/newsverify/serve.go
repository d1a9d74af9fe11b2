package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"newsverify/internal/db"
	"newsverify/internal/jobs"
	"newsverify/internal/metrics"
	"newsverify/internal/prediction"
	"newsverify/internal/server"
)

const (
	shutdownTimeout    = 10 * time.Second
	storeProbeInterval = 30 * time.Second
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction API, classic form and client UI",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address; overrides SERVER_ADDR")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(cmd)
	overrideString(cmd, "addr", &cfg.ServerAddr)

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	m := metrics.New(log)
	deps := server.Deps{Metrics: m}

	// Outcome store is optional
	if cfg.StoreEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")

		m.WithStore(database)
		checker := jobs.NewStoreHealthChecker(database, storeProbeInterval, log, m.SetStoreUp)
		go checker.Start(ctx)
		deps.Store = checker
	} else {
		log.Info("DATABASE_URL not set, prediction outcomes will not be persisted")
	}

	svc, loaded, err := loadService(cfg, log, prediction.WithRecorder(m))
	if err != nil {
		return err
	}
	m.SetModelInfo(loaded.Artifact.Manifest.Name, loaded.Artifact.Manifest.Version, loaded.Mode())
	deps.Predictions = svc
	deps.FallbackReason = loaded.FallbackReason

	srv := server.New(cfg, log)
	srv.RegisterRoutes(deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	m.Wait()
	log.Info("server exited")
	return err
}
