// ABOUTME: Authentication gate resolving bearer credentials to owner IDs
// ABOUTME: Rejects unauthenticated calls before any orchestrator runs
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/recall/internal/models"
)

// IdentityResolver maps a bearer credential to a user identifier. The
// sqlite token store is the production implementation.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (string, error)
}

// Gate authenticates requests before the orchestrators run. Authentication
// failures are terminal for the request; there are no retries.
type Gate struct {
	resolver IdentityResolver
}

// NewGate creates a Gate around the given resolver.
func NewGate(resolver IdentityResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authenticate extracts the bearer credential from an Authorization header
// value and resolves it to an owner ID. Missing, malformed, and rejected
// credentials all fail with ErrUnauthenticated.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (string, error) {
	credential, ok := bearerCredential(authorization)
	if !ok {
		return "", fmt.Errorf("missing or malformed bearer credential: %w", models.ErrUnauthenticated)
	}

	ownerID, err := g.resolver.Resolve(ctx, credential)
	if err != nil {
		return "", err
	}
	if ownerID == "" {
		return "", models.ErrUnauthenticated
	}
	return ownerID, nil
}

// bearerCredential extracts the token from a "Bearer <token>" header value.
func bearerCredential(authorization string) (string, bool) {
	const prefix = "Bearer "
	if len(authorization) <= len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return "", false
	}
	credential := strings.TrimSpace(authorization[len(prefix):])
	return credential, credential != ""
}

// StaticResolver is a map-backed IdentityResolver for tests and single-user
// local setups.
type StaticResolver struct {
	owners map[string]string
}

// NewStaticResolver creates a resolver over a credential → owner map.
func NewStaticResolver(owners map[string]string) *StaticResolver {
	return &StaticResolver{owners: owners}
}

// Resolve looks the credential up in the static map.
func (r *StaticResolver) Resolve(ctx context.Context, credential string) (string, error) {
	ownerID, ok := r.owners[credential]
	if !ok {
		return "", models.ErrUnauthenticated
	}
	return ownerID, nil
}
