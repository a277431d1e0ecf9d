package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/bgrellier/paperdeck"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON or TOML)")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	// Structured JSON logging.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg := paperdeck.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = paperdeck.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
	}

	// Override from environment variables.
	if v := os.Getenv("PAPERDECK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PAPERDECK_FIG_DIR"); v != "" {
		cfg.FigureDir = v
	}
	if v := os.Getenv("PAPERDECK_LLM_PROVIDER"); v != "" {
		cfg.Enhance.Provider = v
	}
	if v := os.Getenv("PAPERDECK_LLM_MODEL"); v != "" {
		cfg.Enhance.Model = v
	}
	if v := os.Getenv("PAPERDECK_LLM_BASE_URL"); v != "" {
		cfg.Enhance.BaseURL = v
	}
	if v := os.Getenv("PAPERDECK_LLM_API_KEY"); v != "" {
		cfg.Enhance.APIKey = v
	}
	if cfg.Enhance.APIKey == "" && cfg.Enhance.Provider == "openai" {
		cfg.Enhance.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	// The server always persists: listing endpoints need the store.
	if cfg.DBPath == "" {
		cfg.DBPath = "paperdeck.db"
	}

	pipeline, err := paperdeck.New(cfg)
	if err != nil {
		slog.Error("creating pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	h := newHandler(pipeline)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logMiddleware)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}
	if origins := os.Getenv("PAPERDECK_CORS_ORIGINS"); origins != "" {
		corsOpts.AllowedOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(corsOpts).Handler)

	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", h.handleConvert)
		r.Get("/documents", h.handleListDocuments)
		r.Get("/documents/{id}/decks", h.handleListDecks)
		r.Delete("/documents/{id}", h.handleDeleteDocument)
		r.Get("/decks/{id}", h.handleGetDeck)
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // conversion of a large PDF can be long
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
