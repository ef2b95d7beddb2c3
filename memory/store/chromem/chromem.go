// Package chromem wraps chromem-go, a pure Go embedded vector database,
// as a journal record store.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/zenapp/council/memory"
)

// Store keeps journal records in per-user chromem collections so one
// user's entries are never ranked against another's.
type Store struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
	mu          sync.RWMutex
}

// New creates an in-memory chromem store.
func New() (*Store, error) {
	return &Store{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
	}, nil
}

// getOrCreateCollection returns the collection for a user, creating it on
// first use.
func (s *Store) getOrCreateCollection(userID string) (*chromem.Collection, error) {
	s.mu.RLock()
	col, exists := s.collections[userID]
	s.mu.RUnlock()
	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if col, exists := s.collections[userID]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		fmt.Sprintf("journal_%s", userID),
		nil, // embeddings are provided, no embedding func
		nil, // default cosine distance
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	s.collections[userID] = col
	return col, nil
}

// Add stores a journal record with its embedding.
func (s *Store) Add(ctx context.Context, rec memory.Record) error {
	col, err := s.getOrCreateCollection(rec.UserID)
	if err != nil {
		return err
	}

	doc := chromem.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Embedding: rec.Embedding,
		Metadata: map[string]string{
			"user_id":    rec.UserID,
			"created_at": rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Query returns up to topK records above the similarity threshold, ordered
// by similarity descending.
func (s *Store) Query(ctx context.Context, userID string, embedding []float32, topK int, threshold float32) ([]memory.RetrievalResult, error) {
	col, err := s.getOrCreateCollection(userID)
	if err != nil {
		return nil, err
	}

	where := map[string]string{"user_id": userID}

	// chromem rejects nResults larger than the collection; back off until
	// the query fits.
	var results []chromem.Result
	for limit := topK; limit >= 1; limit-- {
		results, err = col.QueryEmbedding(ctx, embedding, limit, where, nil)
		if err == nil {
			break
		}
		if isTooFewDocsError(err) {
			if limit == 1 {
				return nil, nil // collection is empty
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]memory.RetrievalResult, 0, len(results))
	for _, res := range results {
		if res.Similarity < threshold {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, res.Metadata["created_at"])
		out = append(out, memory.RetrievalResult{
			Text:       res.Content,
			Similarity: res.Similarity,
			CreatedAt:  createdAt,
		})
	}
	log.Printf("[CHROMEM] Query for user %s: %d raw, %d above threshold %.2f",
		userID, len(results), len(out), threshold)
	return out, nil
}

// Close releases resources. chromem keeps everything in memory.
func (s *Store) Close() error {
	return nil
}

func isTooFewDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
