package convstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zenapp/council/convstore"
	"github.com/zenapp/council/core"
)

// runStoreContract exercises the Store behaviors both implementations must
// share.
func runStoreContract(t *testing.T, store convstore.Store) {
	ctx := context.Background()

	t.Run("GetUnknownUser", func(t *testing.T) {
		_, err := store.Get(ctx, "nobody")
		if !errors.Is(err, core.ErrStateNotFound) {
			t.Fatalf("Expected ErrStateNotFound, got %v", err)
		}
	})

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		state := core.NewConversationState("user1")
		state.AppendMessage(core.NewUserMessage("hello"))
		state.AppendMessage(core.NewAssistantMessage("hi there", core.AgentMentor, "stoic"))
		state.DiscoveryComplete = true
		state.SelectedMentor = "stoic"
		state.UserSituation = "hello"

		if err := store.Put(ctx, "user1", state); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := store.Get(ctx, "user1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.SelectedMentor != "stoic" || !got.DiscoveryComplete {
			t.Errorf("Routing fields lost: %+v", got)
		}
		if len(got.Messages) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(got.Messages))
		}
		if got.Messages[1].Persona != "stoic" || got.Messages[1].Agent != string(core.AgentMentor) {
			t.Errorf("Message tags lost: %+v", got.Messages[1])
		}
	})

	t.Run("MutationsDoNotLeakIntoStore", func(t *testing.T) {
		state := core.NewConversationState("user2")
		state.AppendMessage(core.NewUserMessage("original"))
		if err := store.Put(ctx, "user2", state); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		// Mutating the caller's copy after Put must not affect the store.
		state.AppendMessage(core.NewUserMessage("sneaky"))

		got, err := store.Get(ctx, "user2")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Messages) != 1 {
			t.Fatalf("Put did not copy: %d messages", len(got.Messages))
		}

		// Mutating a Get result must not affect the store either.
		got.AppendMessage(core.NewUserMessage("also sneaky"))
		again, err := store.Get(ctx, "user2")
		if err != nil {
			t.Fatalf("Second Get failed: %v", err)
		}
		if len(again.Messages) != 1 {
			t.Fatalf("Get did not copy: %d messages", len(again.Messages))
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		state := core.NewConversationState("user3")
		if err := store.Put(ctx, "user3", state); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Delete(ctx, "user3"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "user3"); !errors.Is(err, core.ErrStateNotFound) {
			t.Error("State should be gone after delete")
		}
		if err := store.Delete(ctx, "user3"); err != nil {
			t.Fatalf("Repeated delete failed: %v", err)
		}
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Fatalf("Delete of unknown user failed: %v", err)
		}
	})

	t.Run("PutNilState", func(t *testing.T) {
		if err := store.Put(ctx, "user4", nil); err == nil {
			t.Error("Expected error for nil state")
		}
	})
}

func TestMemStore(t *testing.T) {
	runStoreContract(t, convstore.NewMemStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := convstore.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	runStoreContract(t, store)
}
