// ABOUTME: Registry of supported embedding models and their vector dimensions
// ABOUTME: Validates model identifiers and expected output shape
package models

import "sort"

// DefaultEmbeddingModel is used when a request does not name a model.
const DefaultEmbeddingModel = "text-embedding-3-small"

// modelDimensions is the closed set of supported embedding models. Adding a
// model is a deliberate configuration change, not a runtime operation: a
// query embedding is only comparable to stored embeddings produced by the
// same model, so the set is kept small and explicit.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536, // legacy, kept for pre-migration records
}

// ModelDimension returns the expected vector dimension for a model, or an
// UnknownModelError when the model is not supported.
func ModelDimension(model string) (int, error) {
	dim, ok := modelDimensions[model]
	if !ok {
		return 0, &UnknownModelError{Model: model}
	}
	return dim, nil
}

// SupportedModels returns the supported model identifiers in sorted order.
func SupportedModels() []string {
	names := make([]string, 0, len(modelDimensions))
	for name := range modelDimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
