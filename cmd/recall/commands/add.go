// ABOUTME: CLI command to store new memories
// ABOUTME: Embeds the content and persists the record for the CLI owner
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/core"
	"github.com/joho/godotenv"
)

var (
	addType       string
	addImportance float64
	addModel      string
)

// NewAddCmd creates add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Store a new memory",
		Long: `Store a new memory with its semantic embedding.

Examples:
  recall add "Met with Alice about project X"
  recall add --type preference --importance 3 "likes dark mode"
  recall add --model text-embedding-3-large "dense technical note"`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addType, "type", "fact", "Memory type (fact, preference, event, ...)")
	cmd.Flags().Float64Var(&addImportance, "importance", core.DefaultImportance, "Presentation weight")
	cmd.Flags().StringVar(&addModel, "model", "", "Embedding model (default from config)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	content, err := json.Marshal(args[0])
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}

	record, err := rt.ingestor.Ingest(cmd.Context(), ownerID, core.IngestRequest{
		MemoryType: addType,
		Content:    content,
		Importance: &addImportance,
		Model:      addModel,
	})
	if err != nil {
		return fmt.Errorf("storing memory: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s memory %s (%d-dim %s embedding)\n",
			record.MemoryType, record.ID, len(record.Embedding), record.EmbeddingModel)
	}
	return nil
}
