// Package pipeline drives the embedding and clustering capabilities over
// an assembled chunk list and joins the results back by position.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"repoatlas/internal/chunk"
	"repoatlas/internal/cluster"
	"repoatlas/internal/embed"
)

const defaultBatchSize = 32

// EmbeddedChunk is a chunk joined with its embedding vector and cluster
// label. Chunks whose text was empty or whitespace-only carry neither.
type EmbeddedChunk struct {
	Source    string         `json:"source" yaml:"source"`
	Metadata  chunk.Metadata `json:"metadata" yaml:"metadata"`
	Embedding []float32      `json:"embedding,omitempty" yaml:"embedding,omitempty"`
	Cluster   *int           `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// Result is the output of one embedding/clustering run.
type Result struct {
	Model  string          `json:"model" yaml:"model"`
	Chunks []EmbeddedChunk `json:"chunks" yaml:"chunks"`

	// Embedded is the number of chunks that received a vector.
	Embedded int `json:"-" yaml:"-"`
}

// Orchestrator batches chunk text through the embedding capability, runs
// the clustering capability over the vectors, and re-associates labels
// positionally onto the original chunk order.
type Orchestrator struct {
	Embedder  embed.Embedder
	Clusterer cluster.Clusterer
	BatchSize int
	Log       *zap.Logger
}

// NewOrchestrator creates an Orchestrator over the given capabilities.
func NewOrchestrator(e embed.Embedder, c cluster.Clusterer, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{Embedder: e, Clusterer: c, BatchSize: defaultBatchSize, Log: log}
}

// Run embeds and clusters the chunks into k groups. Empty and
// whitespace-only chunks are filtered out before embedding; they appear in
// the result without a vector or cluster. An embedding or clustering
// failure is a top-level failure, not a per-file one.
func (o *Orchestrator) Run(ctx context.Context, chunks []chunk.Chunk, k int) (*Result, error) {
	result := &Result{
		Model:  o.Embedder.Model(),
		Chunks: make([]EmbeddedChunk, len(chunks)),
	}

	var indices []int
	var texts []string
	for i, c := range chunks {
		result.Chunks[i] = EmbeddedChunk{Source: c.Source, Metadata: c.Metadata}
		if strings.TrimSpace(c.Source) == "" {
			continue
		}
		indices = append(indices, i)
		texts = append(texts, c.Source)
	}

	if len(texts) == 0 {
		o.Log.Info("no non-empty chunks to embed")
		return result, nil
	}

	vectors, err := o.embedBatched(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(texts), len(vectors))
	}

	o.Log.Info("clustering embeddings",
		zap.Int("vectors", len(vectors)), zap.Int("clusters", k))
	labels, err := o.Clusterer.Partition(vectors, k)
	if err != nil {
		return nil, fmt.Errorf("cluster embeddings: %w", err)
	}
	if len(labels) != len(vectors) {
		return nil, fmt.Errorf("expected %d cluster labels, got %d", len(vectors), len(labels))
	}

	for pos, i := range indices {
		label := labels[pos]
		result.Chunks[i].Embedding = vectors[pos]
		result.Chunks[i].Cluster = &label
	}
	result.Embedded = len(indices)
	return result, nil
}

func (o *Orchestrator) embedBatched(ctx context.Context, texts []string) ([][]float32, error) {
	batchSize := o.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := o.Embedder.Embed(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", i, end, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
