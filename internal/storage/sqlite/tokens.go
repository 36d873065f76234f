// ABOUTME: API token persistence mapping bearer credentials to owners
// ABOUTME: Implements the identity resolver consumed by the auth gate
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/harper/recall/internal/models"
)

// Token is an issued API token loaded from the store.
type Token struct {
	Token     string    `json:"token"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenStore manages api_tokens rows and resolves bearer credentials to
// owner IDs.
type TokenStore struct {
	db *DB
}

// NewTokenStore creates a TokenStore backed by the given database.
func NewTokenStore(db *DB) *TokenStore {
	return &TokenStore{db: db}
}

// Issue creates and persists a new API token for the owner. The raw token
// is 32 bytes of entropy, base64url-encoded.
func (s *TokenStore) Issue(ctx context.Context, ownerID string) (*Token, error) {
	if ownerID == "" {
		return nil, &models.ValidationError{Field: "owner_id", Reason: "must not be empty"}
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating token entropy: %w", err)
	}

	token := &Token{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO api_tokens (token, owner_id, created_at) VALUES (?, ?, ?)
	`, token.Token, token.OwnerID, token.CreatedAt)
	if err != nil {
		return nil, &models.RepositoryError{Op: "issue-token", Err: err}
	}

	return token, nil
}

// Resolve maps a bearer credential to its owner ID. An unknown token is an
// authentication failure, not a repository fault.
func (s *TokenStore) Resolve(ctx context.Context, credential string) (string, error) {
	var ownerID string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT owner_id FROM api_tokens WHERE token = ?`, credential).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUnauthenticated
	}
	if err != nil {
		return "", &models.RepositoryError{Op: "resolve-token", Err: err}
	}
	return ownerID, nil
}

// ListByOwner returns all tokens issued for an owner, newest first.
func (s *TokenStore) ListByOwner(ctx context.Context, ownerID string) ([]Token, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT token, owner_id, created_at
		FROM api_tokens
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, &models.RepositoryError{Op: "list-tokens", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var tokens []Token
	for rows.Next() {
		var tok Token
		if err := rows.Scan(&tok.Token, &tok.OwnerID, &tok.CreatedAt); err != nil {
			return nil, &models.RepositoryError{Op: "list-tokens", Err: err}
		}
		tokens = append(tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.RepositoryError{Op: "list-tokens", Err: err}
	}

	return tokens, nil
}

// Revoke deletes a token. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(ctx context.Context, credential string) error {
	_, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM api_tokens WHERE token = ?`, credential)
	if err != nil {
		return &models.RepositoryError{Op: "revoke-token", Err: err}
	}
	return nil
}
