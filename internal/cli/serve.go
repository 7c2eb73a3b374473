package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/geometry"
	"github.com/rmoreno/cadet/internal/jobs"
	"github.com/rmoreno/cadet/internal/server"
	"github.com/rmoreno/cadet/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Start the HTTP server exposing instruction parsing, model generation, background jobs, and command history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		history, err := store.OpenHistory(cfg.Storage.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer history.Close()

		tracker := jobs.NewTracker(jobs.Options{
			Steps:     cfg.Jobs.ProgressSteps,
			StepDelay: cfg.Jobs.ParseStepDelay(150 * time.Millisecond),
		}, jobs.NewEventLog(cfg.Storage.EventLogPath), logger)

		srv := server.New(server.Options{
			Interpreter: newInterpreter(cfg, logger),
			History:     history,
			Exporter:    geometry.NewExporter(cfg.Storage.OutputsDir, logger),
			Tracker:     tracker,
			CORSOrigins: cfg.Server.CORSOrigins,
			UseAI:       cfg.AI.Enabled,
			Logger:      logger,
		})

		httpServer := &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: srv.Routes(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", cfg.Server.Addr()))
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			tracker.Wait()
		}

		return nil
	},
}
