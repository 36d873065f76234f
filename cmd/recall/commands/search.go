// ABOUTME: CLI command to search memories by meaning
// ABOUTME: Renders ranked similarity matches as a table or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/recall/internal/core"
	"github.com/joho/godotenv"
)

var (
	searchThreshold float64
	searchCount     int
	searchModel     string
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memories by meaning",
		Long: `Search memories using embedding similarity.

The query is embedded with the same model family as stored memories and
matched against the owner's records only.

Examples:
  recall search "python programming"
  recall search --count 10 --threshold 0.6 "machine learning"
  recall search --format json "API keys"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().Float64Var(&searchThreshold, "threshold", core.DefaultSearchThreshold, "Minimum similarity (0-1)")
	cmd.Flags().IntVar(&searchCount, "count", core.DefaultSearchCount, "Maximum results to return")
	cmd.Flags().StringVar(&searchModel, "model", "", "Embedding model (default from config)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchCount, "count"); err != nil {
		return err
	}

	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	matches, err := rt.searcher.Search(cmd.Context(), ownerID, core.SearchRequest{
		Query:     args[0],
		Threshold: &searchThreshold,
		Count:     &searchCount,
		Model:     searchModel,
	})
	if err != nil {
		return fmt.Errorf("searching memories: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No memories found for query: %s\n", args[0])
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SIMILARITY\tTYPE\tIMPORTANCE\tCONTENT\n")
	fmt.Fprintf(w, "----------\t----\t----------\t-------\n")

	for _, match := range matches {
		fmt.Fprintf(w, "%.3f\t%s\t%.1f\t%s\n",
			match.Similarity,
			match.MemoryType,
			match.Importance,
			truncate(contentPreview(match.Content), 60),
		)
	}

	return w.Flush()
}

// contentPreview renders a JSON content payload for table display.
func contentPreview(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}
