// Package embed provides the embedding capability behind a narrow
// interface so the pipeline can run against deterministic fakes in tests.
package embed

import "context"

// Embedder turns a batch of texts into fixed-length vectors. The returned
// slice has the same length and order as the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}
