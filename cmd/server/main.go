package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/metalscrape/backend/config"
	"github.com/metalscrape/backend/internal/app"
	httpDelivery "github.com/metalscrape/backend/internal/delivery/http"
	"github.com/metalscrape/backend/internal/platform/logger"
	"github.com/metalscrape/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting MetalScrape Backend",
		"version", httpDelivery.Version,
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"store", cfg.Store.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	store, closeStore, err := app.OpenStore(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal("Failed to open catalog store", "error", err)
	}
	defer closeStore()

	// The catalog is built once; a dangling variation aborts startup
	productCatalog, err := app.LoadCatalog(ctx, store, log)
	if err != nil {
		log.Fatal("Failed to build catalog", "error", err)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productCatalog, usecase.PagingConfig{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	}, log)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatal("Server failed", "error", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}
