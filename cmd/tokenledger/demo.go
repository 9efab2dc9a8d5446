package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-tokenledger/eventsource"
	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	journalPath := fs.String("journal", "", "SQLite journal file (default: in-memory)")
	stream := fs.String("stream", "demo", "Journal stream name")
	verbose := fs.Bool("verbose", false, "Log every host call")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger demo [options]

Run a scripted scenario against a fresh ledger: mint, transfer, approve,
delegated transfer, batch transfer, and a pause round-trip. Every committed
call's events go to the journal.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var store eventsource.Store
	if *journalPath != "" {
		sqlite, err := eventsource.NewSQLiteStore(*journalPath)
		if err != nil {
			return err
		}
		store = sqlite
	} else {
		store = eventsource.NewMemoryStore()
	}
	defer store.Close()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	const (
		owner = ledger.Account("owner")
		alice = ledger.Account("alice")
		bob   = ledger.Account("bob")
		carol = ledger.Account("carol")
	)

	journal := eventsource.NewJournal(store, *stream)
	h := host.New(ledger.NewMemStore(owner), ledger.DefaultPolicy(), journal)
	h.SetLogger(logger)
	ctx := context.Background()

	steps := []struct {
		desc string
		call func() ([]ledger.Event, error)
	}{
		{"owner mints 100 to alice", func() ([]ledger.Event, error) {
			return h.Mint(ctx, owner, alice, uint256.NewInt(100))
		}},
		{"alice transfers 40 to bob", func() ([]ledger.Event, error) {
			return h.Transfer(ctx, alice, bob, uint256.NewInt(40))
		}},
		{"alice approves carol for 30", func() ([]ledger.Event, error) {
			return h.Approve(ctx, alice, carol, uint256.NewInt(30))
		}},
		{"carol moves 20 from alice to bob", func() ([]ledger.Event, error) {
			return h.TransferFrom(ctx, carol, alice, bob, uint256.NewInt(20))
		}},
		{"bob batch-pays alice and carol", func() ([]ledger.Event, error) {
			return h.BatchTransfer(ctx, bob,
				[]ledger.Account{alice, carol},
				[]*uint256.Int{uint256.NewInt(5), uint256.NewInt(10)})
		}},
		{"owner pauses", func() ([]ledger.Event, error) {
			return h.Pause(ctx, owner)
		}},
		{"alice tries to transfer while paused", func() ([]ledger.Event, error) {
			return h.Transfer(ctx, alice, bob, uint256.NewInt(1))
		}},
		{"owner unpauses", func() ([]ledger.Event, error) {
			return h.Unpause(ctx, owner)
		}},
		{"bob burns 10", func() ([]ledger.Event, error) {
			return h.Burn(ctx, bob, uint256.NewInt(10))
		}},
	}

	for _, step := range steps {
		events, err := step.call()
		if err != nil {
			fmt.Printf("✗ %-40s %v\n", step.desc, err)
			continue
		}
		for _, ev := range events {
			fmt.Printf("✓ %-40s %s %v\n", step.desc, ev.Type(), ev.Topics())
		}
	}

	fmt.Println()
	fmt.Println("Final state:")
	for _, account := range []ledger.Account{alice, bob, carol} {
		fmt.Printf("  %-8s %s\n", account, h.BalanceOf(account).Dec())
	}
	fmt.Printf("  supply   %s\n", h.TotalSupply().Dec())
	fmt.Printf("  allowance(alice, carol) = %s\n", h.Allowance(alice, carol).Dec())

	version, err := store.StreamVersion(ctx, *stream)
	if err != nil {
		return err
	}
	fmt.Printf("\nJournal %q: %d events\n", *stream, version+1)
	return nil
}
