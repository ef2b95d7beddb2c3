package memory_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zenapp/council/core"
	"github.com/zenapp/council/memory"
)

// mockStore returns canned results and records the query parameters.
type mockStore struct {
	results       []memory.RetrievalResult
	err           error
	lastTopK      int
	lastThreshold float32
}

func (s *mockStore) Add(ctx context.Context, rec memory.Record) error { return nil }

func (s *mockStore) Query(ctx context.Context, userID string, embedding []float32, topK int, threshold float32) ([]memory.RetrievalResult, error) {
	s.lastTopK = topK
	s.lastThreshold = threshold
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *mockStore) Close() error { return nil }

// mockEmbedder returns a fixed vector and counts invocations.
type mockEmbedder struct {
	calls int
	err   error
}

func (e *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{1, 0, 0}, nil
}

func (e *mockEmbedder) Dimensions() int { return 3 }

func TestRetrieveOrdersAndCapsResults(t *testing.T) {
	now := time.Now()
	store := &mockStore{
		results: []memory.RetrievalResult{
			{Text: "older tie", Similarity: 0.8, CreatedAt: now.Add(-time.Hour)},
			{Text: "weak", Similarity: 0.6, CreatedAt: now},
			{Text: "newer tie", Similarity: 0.8, CreatedAt: now},
			{Text: "best", Similarity: 0.95, CreatedAt: now.Add(-2 * time.Hour)},
		},
	}
	retriever, err := memory.NewRetriever(store, &mockEmbedder{}, &memory.Config{TopK: 3, MinSimilarity: 0.5, ContextBudget: 2000})
	if err != nil {
		t.Fatalf("Failed to create retriever: %v", err)
	}

	results, err := retriever.Retrieve(context.Background(), "user1", "what matters")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected TopK cap of 3, got %d results", len(results))
	}
	want := []string{"best", "newer tie", "older tie"}
	for i, w := range want {
		if results[i].Text != w {
			t.Errorf("Position %d: expected %q, got %q", i, w, results[i].Text)
		}
	}
	if store.lastTopK != 3 || store.lastThreshold != 0.5 {
		t.Errorf("Store received topK=%d threshold=%.2f", store.lastTopK, store.lastThreshold)
	}
}

func TestRetrieveWrapsStoreErrors(t *testing.T) {
	store := &mockStore{err: fmt.Errorf("disk on fire")}
	retriever, _ := memory.NewRetriever(store, &mockEmbedder{}, nil)

	_, err := retriever.Retrieve(context.Background(), "user1", "anything")
	if !errors.Is(err, core.ErrStore) {
		t.Fatalf("Expected ErrStore, got %v", err)
	}
}

func TestBuildContextRespectsBudget(t *testing.T) {
	long := strings.Repeat("x", 120)
	store := &mockStore{
		results: []memory.RetrievalResult{
			{Text: long, Similarity: 0.9, CreatedAt: time.Now()},
			{Text: long, Similarity: 0.8, CreatedAt: time.Now()},
			{Text: long, Similarity: 0.7, CreatedAt: time.Now()},
		},
	}
	retriever, _ := memory.NewRetriever(store, &mockEmbedder{}, &memory.Config{TopK: 3, MinSimilarity: 0.5, ContextBudget: 200})

	text := retriever.BuildContext(context.Background(), "user1", "query")
	if len(text) > 200 {
		t.Errorf("Context exceeds budget: %d chars", len(text))
	}
	if !strings.HasPrefix(text, "1. ") {
		t.Errorf("Context should be a numbered list, got %q", text[:10])
	}
}

func TestBuildContextIsBestEffort(t *testing.T) {
	embedder := &mockEmbedder{err: fmt.Errorf("model not loaded")}
	retriever, _ := memory.NewRetriever(&mockStore{}, embedder, nil)

	if text := retriever.BuildContext(context.Background(), "user1", "query"); text != "" {
		t.Errorf("Embedding failure should yield empty context, got %q", text)
	}
}

func TestBuildContextEmptyWhenNothingMatches(t *testing.T) {
	retriever, _ := memory.NewRetriever(&mockStore{}, &mockEmbedder{}, nil)

	if text := retriever.BuildContext(context.Background(), "user1", "query"); text != "" {
		t.Errorf("No matches should yield empty context, got %q", text)
	}
}

func TestQueryEmbeddingsAreCached(t *testing.T) {
	embedder := &mockEmbedder{}
	retriever, _ := memory.NewRetriever(&mockStore{}, embedder, nil)

	for i := 0; i < 3; i++ {
		if _, err := retriever.Retrieve(context.Background(), "user1", "same query"); err != nil {
			t.Fatalf("Retrieve failed: %v", err)
		}
	}

	if embedder.calls != 1 {
		t.Errorf("Expected 1 embed call for repeated query, got %d", embedder.calls)
	}
}
