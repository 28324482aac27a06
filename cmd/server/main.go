/*
main.go - HTTP server entry point

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Open the configured storage backend
  3. Hydrate the session and backfill historical weekdays
  4. Start the chi router with graceful shutdown

CONFIGURATION (environment):
  PORT             HTTP server port (default 8080)
  DATA_BACKEND     jsonfile | sqlite | memory (default jsonfile)
  DATA_DIR         jsonfile base directory (default ./data)
  SQLITE_DB_PATH   sqlite database path (default ./data/timesheet.db)
  MONTHLY_SALARY   monthly compensation (default 3500)
  HOURLY_RATE      deviation rate (default 19.89)
  EXPECTED_HOURS   optional override of contracted hours
  PROJECTS         id:name,... reference data

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the store.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/timesheet-engine/api"
	"github.com/warp/timesheet-engine/config"
	"github.com/warp/timesheet-engine/logging"
	"github.com/warp/timesheet-engine/store"
	"github.com/warp/timesheet-engine/timesheet"
)

func main() {
	log := logging.Default("server")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DataBackend, cfg.DataDir, cfg.SQLiteDBPath)
	if err != nil {
		log.Error("failed to open storage", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	session := timesheet.NewSession(st, cfg.Projects, cfg.Summary())
	if err := session.Hydrate(context.Background()); err != nil {
		log.Error("failed to hydrate session", "error", err)
		os.Exit(1)
	}

	// Backfill missing historical weekdays once per startup.
	if created, err := session.Autofill(context.Background()); err != nil {
		log.Warn("autofill failed", "error", err)
	} else if created > 0 {
		log.Info("autofilled historical entries", "created", created)
	}

	handler := api.NewHandler(session, logging.Default("api"))
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr, "backend", cfg.DataBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
