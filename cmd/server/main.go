// Agentic scam honeypot server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decoylab/honeypot/internal/api"
	"github.com/decoylab/honeypot/internal/archive"
	"github.com/decoylab/honeypot/internal/config"
	"github.com/decoylab/honeypot/internal/feed"
	"github.com/decoylab/honeypot/internal/honeypot"
	"github.com/decoylab/honeypot/internal/middleware"
	"github.com/decoylab/honeypot/internal/report"
	"github.com/decoylab/honeypot/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting honeypot server",
		"port", cfg.Port,
		"max_messages", cfg.MaxMessages,
		"archive_enabled", cfg.ArchiveEnabled)

	// Initialize dependencies.
	var reportArchive archive.Archive
	if cfg.ArchiveEnabled {
		sqliteArchive, err := archive.NewSQLite(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize report archive", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := sqliteArchive.Close(); closeErr != nil {
				slog.Error("Failed to close report archive", "error", closeErr)
			}
		}()

		if err := sqliteArchive.Ping(context.Background()); err != nil {
			slog.Error("Report archive health check failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Report archive connected", "path", cfg.DBPath)
		reportArchive = sqliteArchive
	}

	sessions := store.NewMemory()
	sink := report.NewHTTPSink(cfg.CollectorURL, cfg.CollectorTimeout)
	hub := feed.NewHub(cfg.FeedBuffer)

	controller := honeypot.New(sessions, sink, reportArchive, hub, cfg.MaxMessages)

	// Initialize handlers.
	honeypotHandler := api.NewHoneypotHandler(controller, reportArchive, sessions)
	feedHandler := feed.NewWebSocketHandler(hub)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// API-key protected routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.APIKey))
		honeypotHandler.RegisterRoutes(r)
	})

	// Operator feed WebSocket.
	r.Get("/ws/feed", feedHandler.ServeHTTP)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight final reports drain before the archive closes.
	controller.Close()

	slog.Info("Server stopped successfully")
}
