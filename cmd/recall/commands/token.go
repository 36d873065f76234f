// ABOUTME: CLI commands to manage API tokens for the HTTP server
// ABOUTME: Issues, lists, and revokes bearer credentials per owner
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
		Long: `Manage bearer tokens used to authenticate against the HTTP server.

Each token maps to exactly one owner; requests authenticated with a token
only ever see that owner's memories.`,
	}

	cmd.AddCommand(newTokenCreateCmd())
	cmd.AddCommand(newTokenListCmd())
	cmd.AddCommand(newTokenRevokeCmd())

	return cmd
}

func newTokenCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Issue a new API token for the owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			token, err := rt.tokens.Issue(cmd.Context(), ownerID)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(token, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", token.Token)
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "Token issued for owner %s. Store it now; it is not shown again.\n", token.OwnerID)
			}
			return nil
		},
	}
}

func newTokenListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the owner's API tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			tokens, err := rt.tokens.ListByOwner(cmd.Context(), ownerID)
			if err != nil {
				return fmt.Errorf("listing tokens: %w", err)
			}

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(tokens, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			if len(tokens) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No tokens issued for owner: %s\n", ownerID)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "TOKEN\tCREATED\n")
			fmt.Fprintf(w, "-----\t-------\n")
			for _, tok := range tokens {
				fmt.Fprintf(w, "%s\t%s\n", truncate(tok.Token, 12), formatTime(tok.CreatedAt))
			}
			return w.Flush()
		},
	}
}

func newTokenRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <token>",
		Short: "Revoke an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			if err := rt.tokens.Revoke(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("revoking token: %w", err)
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Token revoked")
			}
			return nil
		},
	}
}
