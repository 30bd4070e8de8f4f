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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/opsboard/backend/internal/api"
	"github.com/opsboard/backend/internal/archiver"
	"github.com/opsboard/backend/internal/auth"
	"github.com/opsboard/backend/internal/config"
	"github.com/opsboard/backend/internal/dataset"
	"github.com/opsboard/backend/internal/metrics"
	"github.com/opsboard/backend/internal/storage"
	"github.com/opsboard/backend/internal/websocket"
	"github.com/opsboard/backend/pkg/middleware"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Str("team_policy", string(cfg.TeamPolicy)).
		Msg("starting opsboard backend server")

	// Create WebSocket hub
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create WebSocket handler
	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	// Create dataset cache
	cache := dataset.NewCache()

	// Create archival store (NoopStore unless DYNAMO_MODE is set)
	store, err := storage.NewStore(ctx, log.With().Str("component", "storage").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Create archiver
	archiverService := archiver.NewArchiver(cache, store, cfg.TeamPolicy, cfg.ArchiveInterval,
		log.With().Str("component", "archiver").Logger())
	go archiverService.Start(ctx)

	// Create API handlers
	datasetHandler := api.NewDatasetHandler(cache, hub, store, cfg, log.With().Str("component", "dataset").Logger())
	reportHandler := api.NewReportHandler(cache, cfg, log.With().Str("component", "report").Logger())
	adminHandler := api.NewAdminHandler(cache, store, log.With().Str("component", "admin").Logger())

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes (no auth required)
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	// Add auth middleware for protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/ws", wsHandler.ServeHTTP)

		r.Get("/api/dataset", datasetHandler.GetMeta)
		r.Get("/api/report", reportHandler.GetReport)
		r.Get("/api/report/employee", reportHandler.GetEmployeeReport)
		r.Get("/api/report/duplicates", reportHandler.GetDuplicates)
		r.Get("/api/filters", reportHandler.GetFilterOptions)

		// Uploads replace the working dataset for everyone
		r.Group(func(r chi.Router) {
			r.Use(api.RequireManagerOrAdmin)
			r.Post("/api/dataset", datasetHandler.Upload)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(api.RequireAdmin)
			r.Delete("/api/dataset", datasetHandler.Delete)
			r.Post("/api/admin/reset-memory", adminHandler.ResetMemory)
			r.Post("/api/admin/wipe-dynamo", adminHandler.WipeDynamo)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop background services
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"opsboard-backend"}`)
}
