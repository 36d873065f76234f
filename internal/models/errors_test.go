// ABOUTME: Unit tests for the shared error taxonomy
// ABOUTME: Verifies errors.As/Is matching and unwrapping behavior
package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "query", Reason: "must not be empty"}
	if !strings.Contains(err.Error(), "query") {
		t.Errorf("message %q missing field name", err.Error())
	}
}

func TestEmbeddingError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &EmbeddingError{Model: DefaultEmbeddingModel, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("EmbeddingError should unwrap to its cause")
	}

	wrapped := fmt.Errorf("search failed: %w", err)
	var embErr *EmbeddingError
	if !errors.As(wrapped, &embErr) {
		t.Error("errors.As should find EmbeddingError through wrapping")
	}
}

func TestRepositoryError_Unwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := &RepositoryError{Op: "nearest-neighbors", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("RepositoryError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "nearest-neighbors") {
		t.Errorf("message %q missing operation", err.Error())
	}
}

func TestErrUnauthenticated_Matching(t *testing.T) {
	wrapped := fmt.Errorf("gate: %w", ErrUnauthenticated)
	if !errors.Is(wrapped, ErrUnauthenticated) {
		t.Error("wrapped ErrUnauthenticated should match with errors.Is")
	}
}
