// ABOUTME: Serve command starts the HTTP API server
// ABOUTME: Exposes memory ingestion and search over token-authenticated REST
package commands

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

	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/api"
	"github.com/harper/recall/internal/auth"
	"github.com/joho/godotenv"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Serves memory ingestion and semantic search over REST. Every request
must carry a bearer token issued with "recall token create"; the token
determines which owner's memories the request can touch.`,
		RunE: runServe,
		Example: `  # Serve on the default address
  recall serve

  # Serve on a specific port
  recall serve --addr :9090`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from RECALL_HTTP_ADDR)")

	return cmd
}

// runServe starts the HTTP server and blocks until shutdown
func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	addr := serveAddr
	if addr == "" {
		addr = rt.cfg.HTTPAddr
	}

	gate := auth.NewGate(rt.tokens)
	server := api.NewServer(gate, rt.ingestor, rt.searcher)

	httpServer := &http.Server{
		Addr:              addr,
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

	if !quiet {
		log.Printf("Recall HTTP server listening on %s", addr)
	}

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
