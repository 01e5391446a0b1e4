package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/internal/kernel"
	"github.com/shashiranjanraj/storerating/pkg/cache"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Start connects the database and cache, serves HTTP on APP_PORT and blocks
// until SIGINT/SIGTERM, then drains in-flight requests and releases both.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()

	store, err := cache.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	httpKernel := kernel.NewHTTPKernel(kernel.Deps{DB: db, Cache: store})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv(), "db", config.DatabaseDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
