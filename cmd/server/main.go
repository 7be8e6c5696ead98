package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matickr/katalog/internal/api"
	"github.com/matickr/katalog/internal/auth"
	"github.com/matickr/katalog/internal/catalog"
	"github.com/matickr/katalog/internal/config"
	"github.com/matickr/katalog/internal/db"
	"github.com/matickr/katalog/internal/media"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting katalog server")

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}
	logger.Info().Str("path", cfg.Database.Path).Msg("database ready")

	mediaStore, err := media.NewStore(cfg.Media.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to set up media store: %w", err)
	}

	svc := catalog.NewService(database, mediaStore, logger)
	verifier := auth.NewVerifier(cfg.Auth.AdminPassword)

	// API routes take priority, uploads and the static frontend handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(svc, verifier, logger))
	mux.Handle(media.URLPrefix, http.StripPrefix(media.URLPrefix,
		http.FileServer(http.Dir(mediaStore.Dir()))))
	if cfg.Server.PublicDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.Server.PublicDir)))
	}

	handler := api.Logging(logger)(api.CORS(mux))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
