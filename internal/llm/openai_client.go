// ABOUTME: OpenAI client for embedding generation with bounded retry
// ABOUTME: Validates output dimensions against the model registry
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig holds configuration for the embedding client.
type ClientConfig struct {
	APIKey string

	// BaseURL overrides the API endpoint. Useful for compatible endpoints
	// and tests. Empty means the default OpenAI endpoint.
	BaseURL string

	// Timeout is the per-attempt deadline for one provider call.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// RetryDelay is the base backoff delay between attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
	}
}

// Client wraps the OpenAI embeddings API with retry logic and output
// validation. Safe for concurrent use.
type Client struct {
	client     *openai.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an embedding client with default configuration.
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates an embedding client with custom configuration.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	apiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		apiConfig.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:     openai.NewClientWithConfig(apiConfig),
		timeout:    timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// Embed generates an embedding vector for the given text using the given
// model. The returned vector length always equals the registry dimension
// for the model; a provider response with the wrong shape is treated as a
// provider fault, never silently accepted.
//
// Transient provider failures (rate limits, timeouts, 5xx) are retried with
// jittered exponential backoff. Non-transient failures (bad credentials,
// model rejected by the provider) propagate immediately.
func (c *Client) Embed(ctx context.Context, text, model string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &models.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	expectedDim, err := models.ModelDimension(model)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if !util.SleepWithContext(ctx.Done(), util.CalculateBackoff(c.retryDelay, attempt)) {
				break
			}
		}

		vector, err := c.embedOnce(ctx, text, model, expectedDim)
		if err == nil {
			return vector, nil
		}

		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)

		if ctx.Err() != nil || !isRetryable(err) {
			break
		}
	}

	return nil, &models.EmbeddingError{Model: model, Err: lastErr}
}

// embedOnce performs a single provider call with its own timeout.
func (c *Client) embedOnce(ctx context.Context, text, model string, expectedDim int) ([]float64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, &malformedResponseError{reason: "no embeddings returned"}
	}

	embedding32 := resp.Data[0].Embedding
	if len(embedding32) != expectedDim {
		return nil, &malformedResponseError{
			reason: fmt.Sprintf("provider returned %d dimensions, expected %d for %s",
				len(embedding32), expectedDim, model),
		}
	}

	// Convert []float32 to []float64
	embedding64 := make([]float64, len(embedding32))
	for i, v := range embedding32 {
		embedding64[i] = float64(v)
	}

	return embedding64, nil
}

// malformedResponseError marks a structurally invalid provider response.
// It is deterministic, so retrying would only burn the budget.
type malformedResponseError struct {
	reason string
}

func (e *malformedResponseError) Error() string { return e.reason }

// isRetryable reports whether a provider error is worth another attempt.
// Rate limits, server faults, and transport errors are transient; client
// faults like bad credentials or a rejected model are not.
func isRetryable(err error) bool {
	var malformed *malformedResponseError
	if errors.As(err, &malformed) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Per-attempt timeouts and transport-level failures (connection reset,
	// DNS) are worth retrying.
	return true
}
