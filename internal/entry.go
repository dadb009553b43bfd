// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Madhuram99/ATS-SYSTEM/internal/annotations"
	"github.com/Madhuram99/ATS-SYSTEM/internal/api"
	"github.com/Madhuram99/ATS-SYSTEM/internal/catalog"
	"github.com/Madhuram99/ATS-SYSTEM/internal/events"
	"github.com/Madhuram99/ATS-SYSTEM/internal/mailer"
	"github.com/Madhuram99/ATS-SYSTEM/internal/mcpserver"
	"github.com/Madhuram99/ATS-SYSTEM/internal/pipeline"
	"github.com/Madhuram99/ATS-SYSTEM/internal/resumes"
	"github.com/Madhuram99/ATS-SYSTEM/internal/store"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("resumes_path", cfg.Resumes.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize resume blob storage.
	blobs, err := resumes.NewFS(cfg.Resumes.Path)
	if err != nil {
		return fmt.Errorf("init resume storage: %w", err)
	}

	// Initialize SQLite database.
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// SSE broker.
	broker := events.NewBroker()
	defer broker.Close()

	// Build domain services and router.
	svcs := api.Services{
		Catalog:     catalog.NewService(db),
		Pipeline:    pipeline.NewService(db, blobs, broker),
		Annotations: annotations.NewService(db, broker),
		Mailer:      mailer.NewService(db, mailer.NewSMTPSender(cfg.SMTP)),
	}
	apiRouter := api.NewRouter(svcs, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Resume files (unauthenticated; names are unguessable).
	r.Get("/resumes/{filename}", api.NewResumeHandler(blobs).ServeFile)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server against the same database. Logs go to
// stderr so stdout stays clean for the protocol stream.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	blobs, err := resumes.NewFS(cfg.Resumes.Path)
	if err != nil {
		return fmt.Errorf("init resume storage: %w", err)
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	srv := mcpserver.New(
		catalog.NewService(db),
		pipeline.NewService(db, blobs, nil),
		annotations.NewService(db, nil),
	)

	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
