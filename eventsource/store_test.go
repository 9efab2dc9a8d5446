package eventsource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/go-tokenledger/eventsource"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		return eventsource.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		store, err := eventsource.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventsource.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("ledger-1", "Mint", map[string]string{"to": "alice"})
		event2, _ := eventsource.NewEvent("ledger-1", "Transfer", map[string]string{"to": "bob"})

		version, err := store.Append(ctx, "ledger-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "ledger-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "ledger-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Type != "Mint" {
			t.Errorf("expected type Mint, got %s", events[0].Type)
		}
		if events[1].Type != "Transfer" {
			t.Errorf("expected type Transfer, got %s", events[1].Type)
		}

		var payload map[string]string
		if err := events[1].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["to"] != "bob" {
			t.Errorf("expected payload to=bob, got %v", payload)
		}
	})

	t.Run("ReadFromOffset", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		var batch []*eventsource.Event
		for i := 0; i < 5; i++ {
			event, _ := eventsource.NewEvent("ledger-1", "Transfer", nil)
			batch = append(batch, event)
		}
		if _, err := store.Append(ctx, "ledger-1", -1, batch); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "ledger-1", 3)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Version != 3 || events[1].Version != 4 {
			t.Errorf("unexpected versions: %d, %d", events[0].Version, events[1].Version)
		}
	})

	t.Run("ConcurrencyConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("ledger-1", "Mint", nil)
		event2, _ := eventsource.NewEvent("ledger-1", "Burn", nil)

		if _, err := store.Append(ctx, "ledger-1", -1, []*eventsource.Event{event1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		_, err := store.Append(ctx, "ledger-1", 5, []*eventsource.Event{event2})
		if !errors.Is(err, eventsource.ErrConcurrencyConflict) {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		if _, err := store.Append(ctx, "ledger-1", 0, []*eventsource.Event{event2}); err != nil {
			t.Errorf("append with correct version failed: %v", err)
		}
	})

	t.Run("StreamVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		version, err := store.StreamVersion(ctx, "ledger-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != -1 {
			t.Errorf("expected version -1 for non-existent stream, got %d", version)
		}

		event, _ := eventsource.NewEvent("ledger-1", "Mint", nil)
		if _, err := store.Append(ctx, "ledger-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, err = store.StreamVersion(ctx, "ledger-1")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("IsolatedStreams", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("ledger-1", "Mint", nil)
		event2, _ := eventsource.NewEvent("ledger-2", "Burn", nil)

		if _, err := store.Append(ctx, "ledger-1", -1, []*eventsource.Event{event1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := store.Append(ctx, "ledger-2", -1, []*eventsource.Event{event2}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "ledger-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 1 || events[0].Type != "Mint" {
			t.Errorf("stream ledger-1 leaked events: %v", events)
		}
	})
}
