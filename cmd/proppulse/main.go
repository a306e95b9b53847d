package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Jaydot33/proppulse-mvp/internal/assembler"
	"github.com/Jaydot33/proppulse-mvp/internal/cache"
	"github.com/Jaydot33/proppulse-mvp/internal/config"
	"github.com/Jaydot33/proppulse-mvp/internal/handlers"
	"github.com/Jaydot33/proppulse-mvp/internal/notifier"
	"github.com/Jaydot33/proppulse-mvp/internal/providers/oddsapi"
	"github.com/Jaydot33/proppulse-mvp/internal/sentiment"
)

func main() {
	fmt.Printf("=== PropPulse API v%s ===\n", handlers.Version)

	cfg := config.Load()

	if cfg.OddsAPIKey == "" {
		fmt.Println("⚠️  ODDS_API_KEY not set: props requests will fail until configured")
	}
	if cfg.XBearerToken == "" {
		fmt.Println("⚠️  X_BEARER_TOKEN not set: sentiment degraded to zero risk")
	}

	// Cache is best effort: a dead Redis disables caching, nothing else
	store := cache.New(context.Background(), cfg.RedisURL)
	defer store.Close()

	if store.Enabled() {
		fmt.Println("✓ Connected to Redis")
	} else {
		fmt.Println("⚠️  Caching disabled")
	}

	oddsClient := oddsapi.New(cfg.OddsAPIKey, store)
	scorer := sentiment.New(cfg.XBearerToken)
	propsAssembler := assembler.New(oddsClient, scorer, store)
	alertNotifier := notifier.New(cfg.AlertWebhookURL)

	handler := handlers.NewHandler(propsAssembler, alertNotifier, store)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(90 * time.Second))

	// CORS configuration: the dashboard is served from another origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/", handler.Root)
	r.Get("/health", handler.HealthCheck)
	r.Get("/arbs", handler.GetArbs)
	r.Get("/{sport}/props", handler.GetProps)
	r.Post("/alert", handler.PostAlert)

	// Start server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 95 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ PropPulse listening on %s\n", cfg.Port)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /{sport}/props  (nba, ncaab)")
		fmt.Println("    GET  /arbs?sport=nba")
		fmt.Println("    POST /alert")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
