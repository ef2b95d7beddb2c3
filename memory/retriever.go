package memory

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/dgraph-io/ristretto"

	"github.com/zenapp/council/core"
)

// Config holds Retriever configuration.
type Config struct {
	// TopK caps how many records are returned per query.
	// Default: 3
	TopK int

	// MinSimilarity is the minimum cosine similarity for inclusion [0.0-1.0].
	// Default: 0.5
	MinSimilarity float32

	// ContextBudget caps the total characters of concatenated grounding
	// text. Default: 2000
	ContextBudget int

	// CacheSize is the query-embedding cache capacity in bytes.
	// Default: 4 MiB
	CacheSize int64
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	TopK:          3,
	MinSimilarity: 0.5,
	ContextBudget: 2000,
	CacheSize:     4 << 20,
}

// Retriever turns a user message into grounding context. Query embeddings
// are cached so repeated or retried turns don't re-embed the same text.
type Retriever struct {
	store    Store
	embedder Embedder
	config   *Config
	cache    *ristretto.Cache
}

// NewRetriever creates a Retriever over the given store and embedder.
func NewRetriever(store Store, embedder Embedder, config *Config) (*Retriever, error) {
	if config == nil {
		config = DefaultConfig
	}
	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultConfig.CacheSize
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     cacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		config:   config,
		cache:    cache,
	}, nil
}

// Retrieve returns the user's best-matching records for a query, sorted by
// similarity descending with ties broken by recency descending, filtered by
// the similarity threshold and capped at TopK.
func (r *Retriever) Retrieve(ctx context.Context, userID, query string) ([]RetrievalResult, error) {
	embedding, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := r.store.Query(ctx, userID, embedding, r.config.TopK, r.config.MinSimilarity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStore, err)
	}

	// Stores return similarity order; enforce the recency tie-break here so
	// both backends share one contract.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > r.config.TopK {
		results = results[:r.config.TopK]
	}
	return results, nil
}

// BuildContext retrieves matches and concatenates their texts into a single
// grounding block, truncated to the context budget. Grounding is
// best-effort: any failure logs and returns an empty string.
func (r *Retriever) BuildContext(ctx context.Context, userID, query string) string {
	results, err := r.Retrieve(ctx, userID, query)
	if err != nil {
		log.Printf("[RETRIEVER] Retrieval failed, continuing ungrounded: %v", err)
		return ""
	}
	if len(results) == 0 {
		log.Printf("[RETRIEVER] No journal entries above threshold for query: %q", truncateLog(query, 50))
		return ""
	}

	var b strings.Builder
	for i, res := range results {
		entry := fmt.Sprintf("%d. %s\n", i+1, res.Text)
		if b.Len()+len(entry) > r.config.ContextBudget {
			remaining := r.config.ContextBudget - b.Len()
			if remaining > 0 {
				b.WriteString(entry[:remaining])
			}
			break
		}
		b.WriteString(entry)
	}
	log.Printf("[RETRIEVER] Retrieved %d entries (%d chars) for user %s", len(results), b.Len(), userID)
	return strings.TrimSpace(b.String())
}

// embedQuery embeds the query text, serving repeats from the cache.
func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if cached, ok := r.cache.Get(query); ok {
		if embedding, ok := cached.([]float32); ok {
			return embedding, nil
		}
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbedding, err)
	}

	r.cache.Set(query, embedding, int64(len(embedding)*4))
	r.cache.Wait()
	return embedding, nil
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
