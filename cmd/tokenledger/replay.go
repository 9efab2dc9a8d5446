package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-tokenledger/eventsource"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	journalPath := fs.String("journal", "", "SQLite journal file (required)")
	stream := fs.String("stream", "demo", "Journal stream name")
	from := fs.Int("from", 0, "First version to replay")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger replay [options]

Replay a journal stream in order, printing each event's version, type,
topics and payload.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *journalPath == "" {
		fs.Usage()
		return fmt.Errorf("--journal is required")
	}

	store, err := eventsource.NewSQLiteStore(*journalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.Read(context.Background(), *stream, *from)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Printf("stream %q: no events\n", *stream)
		return nil
	}

	for _, event := range events {
		fmt.Printf("%4d  %-18s  %-30v  %s\n",
			event.Version, event.Type, event.Topics, string(event.Data))
	}
	fmt.Printf("\n%d events\n", len(events))
	return nil
}
