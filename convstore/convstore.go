// Package convstore persists per-user conversation state. Implementations
// return deep copies so callers can mutate freely and commit changes only
// through Put.
package convstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/zenapp/council/core"
)

// Store is the conversation state persistence capability.
type Store interface {
	// Get returns the state for a user, or core.ErrStateNotFound if the
	// user has no conversation yet.
	Get(ctx context.Context, userID string) (*core.ConversationState, error)

	// Put stores the state for a user, replacing any previous state.
	Put(ctx context.Context, userID string, state *core.ConversationState) error

	// Delete removes a user's state. Deleting a missing user is not an
	// error.
	Delete(ctx context.Context, userID string) error

	// Close releases resources held by the store.
	Close() error
}

// MemStore is an in-memory Store backed by a map.
type MemStore struct {
	states map[string]*core.ConversationState
	mu     sync.RWMutex
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{states: make(map[string]*core.ConversationState)}
}

// Get returns a copy of the user's state.
func (s *MemStore) Get(ctx context.Context, userID string) (*core.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", core.ErrStateNotFound, userID)
	}
	return state.Clone(), nil
}

// Put stores a copy of the state, so later mutations by the caller don't
// leak into the store.
func (s *MemStore) Put(ctx context.Context, userID string, state *core.ConversationState) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", core.ErrStore)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state.Clone()
	return nil
}

// Delete removes the user's state if present.
func (s *MemStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error {
	return nil
}
