package convstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zenapp/council/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	user_id    TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// SQLiteStore persists conversation state as JSON in a SQLite database, so
// conversations survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a conversation store at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get loads and decodes the user's state.
func (s *SQLiteStore) Get(ctx context.Context, userID string) (*core.ConversationState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM conversations WHERE user_id = ?`, userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", core.ErrStateNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query conversation: %v", core.ErrStore, err)
	}

	var state core.ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("%w: decode conversation: %v", core.ErrStore, err)
	}
	return &state, nil
}

// Put serializes and upserts the user's state.
func (s *SQLiteStore) Put(ctx context.Context, userID string, state *core.ConversationState) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", core.ErrStore)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encode conversation: %v", core.ErrStore, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (user_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`, userID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: upsert conversation: %v", core.ErrStore, err)
	}
	return nil
}

// Delete removes the user's state if present.
func (s *SQLiteStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM conversations WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("%w: delete conversation: %v", core.ErrStore, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
