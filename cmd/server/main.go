// Package main initializes and starts the table session server, setting up
// configuration, logging, the session store backend, services, and handlers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/mpmisha/TindeResturant/internal/config"
	"github.com/mpmisha/TindeResturant/internal/db"
	"github.com/mpmisha/TindeResturant/internal/logger"
	"github.com/mpmisha/TindeResturant/internal/repository"
	"github.com/mpmisha/TindeResturant/internal/server/handler/http"
	"github.com/mpmisha/TindeResturant/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	versionStr, buildDateStr := version, buildDate
	if versionStr == "" {
		versionStr = "N/A"
	}
	if buildDateStr == "" {
		buildDateStr = "N/A"
	}
	fmt.Printf("Build version: %s\n", versionStr)
	fmt.Printf("Build date: %s\n", buildDateStr)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick the table store backend: Postgres when a DSN is set, otherwise
	// Firestore when a project is set.
	var repo repository.TableRepository
	switch {
	case options.DatabaseDSN != "":
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		// Abandoned tables are garbage after a week; nothing deletes them
		// client-side.
		db.StartStaleTableCleaner(ctx, postgresDB,
			time.Hour,      // interval
			7*24*time.Hour, // retention
			zapLogger,
		)

		repo = repository.NewPostgresTableRepository(postgresDB)
	case options.FirestoreProject != "":
		client, err := firestore.NewClient(ctx, options.FirestoreProject)
		if err != nil {
			zapLogger.Fatal("cannot init firestore", zap.Error(err))
		}
		defer client.Close()
		repo = repository.NewFirestoreTableRepository(client)
	default:
		zapLogger.Fatal("no table store configured: set -d (postgres dsn) or -f (firestore project)")
	}

	// Initialize the business-logic service and handlers.
	tableService := service.NewTableService(repo)
	defer tableService.Hub().Close()

	tableHandler := &http.TableHandler{TableService: tableService}
	wsHandler := http.NewWSHandler(tableService.Hub(), tableService, zapLogger)

	// Build the router with middleware and routes.
	router := http.NewRouter(tableHandler, wsHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
