package memory

import (
	"context"
	"time"
)

// Record is one journal entry with its embedding. Records are produced by
// the journal-ingestion path and are read-only to the turn pipeline.
type Record struct {
	ID        string
	UserID    string
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// RetrievalResult is one ranked match for a query. Ephemeral, computed per
// query.
type RetrievalResult struct {
	Text       string
	Similarity float32
	CreatedAt  time.Time
}

// Store is the vector storage backend for journal records.
// Implementations: chromem (embedded), sqlite (on disk).
type Store interface {
	// Add stores a record with its embedding. Used by the ingestion path
	// and by tests to seed data.
	Add(ctx context.Context, rec Record) error

	// Query returns up to topK of the user's records with cosine
	// similarity to the query embedding at or above threshold, ordered by
	// similarity descending.
	Query(ctx context.Context, userID string, embedding []float32, topK int, threshold float32) ([]RetrievalResult, error)

	// Close releases resources.
	Close() error
}

// Embedder converts text to a fixed-dimension embedding vector.
// Implementations: onnx (local model), mock (tests).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
