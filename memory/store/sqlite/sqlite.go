// Package sqlite provides a SQLite-backed journal record store. Embeddings
// are stored as little-endian float32 BLOBs; similarity ranking happens in
// Go, which is fine at journal scale (hundreds to low thousands of entries
// per user).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zenapp/council/memory"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	embedding  BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_user ON journal_entries(user_id);
`

// Store is a SQLite-backed memory.Store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a journal store at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Add inserts or replaces a journal record.
func (s *Store) Add(ctx context.Context, rec memory.Record) error {
	if rec.ID == "" || rec.UserID == "" {
		return fmt.Errorf("record ID and UserID are required")
	}
	if len(rec.Embedding) == 0 {
		return fmt.Errorf("record embedding is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, content, embedding, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding,
			created_at = excluded.created_at
	`, rec.ID, rec.UserID, rec.Text, serializeEmbedding(rec.Embedding), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Query loads the user's records and ranks them by cosine similarity.
func (s *Store) Query(ctx context.Context, userID string, embedding []float32, topK int, threshold float32) ([]memory.RetrievalResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content, embedding, created_at
		FROM journal_entries
		WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var results []memory.RetrievalResult
	for rows.Next() {
		var content string
		var blob []byte
		var createdAt time.Time
		if err := rows.Scan(&content, &blob, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		stored, err := deserializeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("decode embedding: %w", err)
		}
		sim := cosineSimilarity(embedding, stored)
		if sim < threshold {
			continue
		}
		results = append(results, memory.RetrievalResult{
			Text:       content,
			Similarity: sim,
			CreatedAt:  createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func serializeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func deserializeEmbedding(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
