// ABOUTME: Error taxonomy shared across orchestrators, storage, and transport
// ABOUTME: Each kind maps to a distinct response code at the API boundary
package models

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a request carries no valid identity.
// Authentication failures are terminal for the request and never retried.
var ErrUnauthenticated = errors.New("recall: unauthenticated")

// ValidationError reports malformed caller input. It is always raised before
// any outbound call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownModelError reports an embedding model identifier outside the
// supported set.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown embedding model: %q", e.Model)
}

// EmbeddingError reports an embedding provider failure after the retry
// budget is exhausted, or a non-retryable provider fault.
type EmbeddingError struct {
	Model string
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding service failed (model %s): %v", e.Model, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// RepositoryError reports a persistence or nearest-neighbor search failure.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }
