package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DavidRSR1/verifica/internal/api"
	"github.com/DavidRSR1/verifica/internal/config"
	"github.com/DavidRSR1/verifica/internal/database"
	"github.com/DavidRSR1/verifica/internal/repository"
	"github.com/DavidRSR1/verifica/internal/service"
	"github.com/DavidRSR1/verifica/internal/session"
	"github.com/DavidRSR1/verifica/internal/upstream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the session row cache
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer db.Close()

	log.Printf("Session store ready: %s", cfg.Database.DSN)

	// Panel backend client
	panelClient := upstream.NewClient(cfg.Panel.BaseURL, cfg.Panel.Token)

	// Create services
	systemService := service.NewSystemService(db)
	catalogService := service.NewCatalogService(panelClient, cfg.Catalog.TTL)
	sess := session.New(panelClient, repository.NewRowCacheRepository(db), nil)

	// Warm the provider and station catalogs, then keep them fresh on a
	// schedule. A cold start with the panel backend down is not fatal.
	if err := catalogService.RefreshAll(context.Background()); err != nil {
		log.Printf("Initial catalog refresh failed: %v", err)
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Catalog.RefreshSpec, func() {
		if err := catalogService.RefreshAll(context.Background()); err != nil {
			log.Printf("Catalog refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid catalog refresh spec %q: %v", cfg.Catalog.RefreshSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, catalogService, sess, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
