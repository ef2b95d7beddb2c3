package core

import "errors"

// Error taxonomy for turn processing. Callers distinguish classes with
// errors.Is; every class guarantees that no partial state was persisted,
// so a failed turn can always be retried against unchanged state.
var (
	// ErrEmptyMessage rejects empty or whitespace-only input before any
	// state is read.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrGeneration wraps text-generation capability failures
	// (timeout, quota, malformed output).
	ErrGeneration = errors.New("generation failed")

	// ErrEmbedding wraps embedding capability failures.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStore wraps persistence read/write failures.
	ErrStore = errors.New("store failure")

	// ErrStateNotFound is returned by conversation stores when no state
	// exists for a user.
	ErrStateNotFound = errors.New("conversation state not found")
)
