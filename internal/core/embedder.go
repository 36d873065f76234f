// ABOUTME: Embedder port consumed by both orchestrators
// ABOUTME: Satisfied by the llm.Client and by test fakes
package core

import "context"

// Embedder produces a vector embedding for one piece of text using one
// model. The returned vector length always equals the registry dimension
// for the model.
type Embedder interface {
	Embed(ctx context.Context, text, model string) ([]float64, error)
}
