package mock_test

import (
	"context"
	"testing"

	"github.com/zenapp/council/memory/embedder/mock"
)

func cosine(a, b []float32) float32 {
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot // inputs are unit vectors
}

func TestEmbedIsDeterministic(t *testing.T) {
	embedder := mock.New()

	first, err := embedder.Embed(context.Background(), "walking by the river")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	second, _ := embedder.Embed(context.Background(), "walking by the river")

	if len(first) != embedder.Dimensions() {
		t.Fatalf("Expected %d dimensions, got %d", embedder.Dimensions(), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("Same text produced different embeddings")
		}
	}
}

func TestSharedWordsIncreaseSimilarity(t *testing.T) {
	embedder := mock.New()
	ctx := context.Background()

	a, _ := embedder.Embed(ctx, "stressed about work deadlines")
	b, _ := embedder.Embed(ctx, "stressed about work meetings")
	c, _ := embedder.Embed(ctx, "baking sourdough bread")

	if cosine(a, b) <= cosine(a, c) {
		t.Errorf("Overlapping texts should be closer: overlap=%f unrelated=%f",
			cosine(a, b), cosine(a, c))
	}
}

func TestEmbedIsUnitLength(t *testing.T) {
	embedder := mock.New()

	vec, err := embedder.Embed(context.Background(), "any text at all")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm < 0.99 || norm > 1.01 {
		t.Errorf("Expected unit vector, squared norm %f", norm)
	}
}
