package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/museun/dono-server/internal/config"
	"github.com/museun/dono-server/internal/constants"
	httpapp "github.com/museun/dono-server/internal/http"
	"github.com/museun/dono-server/internal/logger"
	"github.com/museun/dono-server/internal/store"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// No table may be used until both exist, so a failed bootstrap is fatal.
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Cannot create tables from schema", "error", err, "db_path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck // process exit

	storeLogger := appLogger.WithComponent("store")
	for _, table := range store.TableNames() {
		storeLogger.WithTable(table).Info("Table ready")
	}

	h := httpapp.NewHandler(db, appLogger)

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: h.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		appLogger.Error("Server error", "error", err)
		db.Close() //nolint:errcheck // exiting
		os.Exit(1)
	}

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exiting")
}
