// ABOUTME: Shared runtime bootstrap for CLI commands
// ABOUTME: Wires config, storage, embedding client, and orchestrators
package commands

import (
	"fmt"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/core"
	"github.com/harper/recall/internal/llm"
	"github.com/harper/recall/internal/storage/sqlite"
)

// runtime bundles the wired components a command needs.
type runtime struct {
	cfg      *config.Config
	db       *sqlite.DB
	memories *sqlite.MemoryStore
	tokens   *sqlite.TokenStore
	ingestor *core.Ingestor
	searcher *core.Searcher
}

// newRuntime loads configuration and wires the full pipeline. Commands that
// only touch storage may pass requireOpenAI=false and skip the API key check.
func newRuntime(requireOpenAI bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if requireOpenAI && cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		db:       db,
		memories: sqlite.NewMemoryStore(db),
		tokens:   sqlite.NewTokenStore(db),
	}

	if cfg.OpenAIKey != "" {
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initializing embedding client: %w", err)
		}

		rt.ingestor = core.NewIngestor(client, rt.memories)
		rt.searcher = core.NewSearcher(client, rt.memories, core.SearcherConfig{
			Threshold: cfg.SearchThreshold,
			Count:     cfg.SearchCount,
			MaxCount:  cfg.MaxSearchCount,
		})
	}

	return rt, nil
}

// Close releases the runtime's resources.
func (rt *runtime) Close() error {
	return rt.db.Close()
}
