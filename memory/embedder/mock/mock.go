// Package mock provides a deterministic embedder for tests and local
// development without model files.
package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder generates deterministic embeddings by summing per-token hash
// vectors. Texts that share words land near each other, which is enough
// for exercising retrieval ranking without a real model.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder with 384 dimensions (matching
// all-MiniLM-L6-v2, so it can stand in for the local model).
func New() *Embedder {
	return &Embedder{dimensions: 384}
}

// Embed returns a unit vector derived from the text's tokens.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding := make([]float32, e.dimensions)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New64a()
		h.Write([]byte(token))
		seed := h.Sum64()

		for i := 0; i < e.dimensions; i++ {
			// LCG step per dimension keeps each token's vector stable.
			seed = seed*6364136223846793005 + 1442695040888963407
			embedding[i] += float32(int64(seed)) / float32(math.MaxInt64)
		}
	}

	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
