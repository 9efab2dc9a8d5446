package eventsource_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-tokenledger/eventsource"
	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

func TestJournalRecordsCommittedCalls(t *testing.T) {
	const owner = ledger.Account("owner")
	const alice = ledger.Account("alice")
	const bob = ledger.Account("bob")

	store := eventsource.NewMemoryStore()
	defer store.Close()
	journal := eventsource.NewJournal(store, "ledger-1")

	h := host.New(ledger.NewMemStore(owner), ledger.DefaultPolicy(), journal)
	ctx := context.Background()

	if _, err := h.Mint(ctx, owner, alice, uint256.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := h.Transfer(ctx, alice, bob, uint256.NewInt(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	// Rejected calls must not reach the journal.
	if _, err := h.Transfer(ctx, alice, alice, uint256.NewInt(1)); err == nil {
		t.Fatal("self transfer should fail")
	}

	entries, err := journal.Replay(ctx)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(entries))
	}

	if entries[0].Type != "Mint" || entries[1].Type != "Transfer" {
		t.Errorf("unexpected entry types: %s, %s", entries[0].Type, entries[1].Type)
	}
	if entries[0].Version != 0 || entries[1].Version != 1 {
		t.Errorf("unexpected versions: %d, %d", entries[0].Version, entries[1].Version)
	}

	// Topics carry the indexed accounts.
	wantTopics := []string{"alice", "bob"}
	if len(entries[1].Topics) != 2 ||
		entries[1].Topics[0] != wantTopics[0] || entries[1].Topics[1] != wantTopics[1] {
		t.Errorf("transfer topics = %v, want %v", entries[1].Topics, wantTopics)
	}

	// Payload round-trips the domain event.
	var transfer ledger.TransferEvent
	if err := entries[1].Decode(&transfer); err != nil {
		t.Fatalf("decode transfer: %v", err)
	}
	if transfer.From != alice || transfer.To != bob || !transfer.Amount.Eq(uint256.NewInt(40)) {
		t.Errorf("unexpected transfer payload: %+v", transfer)
	}
}

func TestJournalEmitNoEvents(t *testing.T) {
	store := eventsource.NewMemoryStore()
	defer store.Close()
	journal := eventsource.NewJournal(store, "ledger-1")

	if err := journal.Emit(context.Background(), nil); err != nil {
		t.Fatalf("emit with no events: %v", err)
	}
	version, err := store.StreamVersion(context.Background(), "ledger-1")
	if err != nil {
		t.Fatalf("stream version: %v", err)
	}
	if version != -1 {
		t.Errorf("empty emit created stream entries: version %d", version)
	}
}
