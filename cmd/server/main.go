// ABOUTME: Standalone HTTP API server entry point
// ABOUTME: Wires config, storage, embeddings, and the REST server directly
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/recall/internal/api"
	"github.com/harper/recall/internal/auth"
	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/llm"
	"github.com/harper/recall/internal/storage/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	memories := sqlite.NewMemoryStore(db)
	tokens := sqlite.NewTokenStore(db)

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("initializing embedding client: %w", err)
	}

	ingestor := core.NewIngestor(client, memories)
	searcher := core.NewSearcher(client, memories, core.SearcherConfig{
		Threshold: cfg.SearchThreshold,
		Count:     cfg.SearchCount,
		MaxCount:  cfg.MaxSearchCount,
	})

	server := api.NewServer(auth.NewGate(tokens), ingestor, searcher)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.ListenAndServe()
	}()

	log.Printf("Recall HTTP server listening on %s", cfg.HTTPAddr)

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		log.Println("Shutdown complete")

	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
