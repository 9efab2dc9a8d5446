package eventsource

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// Journal writes a ledger's domain events to one stream of a Store. It
// satisfies the host's Emitter interface, so a committed call's events land
// in the journal in order.
type Journal struct {
	store  Store
	stream string
}

// NewJournal creates a journal writing to the given stream.
func NewJournal(store Store, stream string) *Journal {
	return &Journal{store: store, stream: stream}
}

// Stream returns the journal's stream name.
func (j *Journal) Stream() string { return j.stream }

// Emit appends the events of one committed call to the journal stream.
func (j *Journal) Emit(ctx context.Context, events []ledger.Event) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*Event, 0, len(events))
	for _, ev := range events {
		entry, err := NewEvent(j.stream, ev.Type(), ev)
		if err != nil {
			return err
		}
		entry.Topics = ev.Topics()
		entries = append(entries, entry)
	}

	version, err := j.store.StreamVersion(ctx, j.stream)
	if err != nil {
		return err
	}
	if _, err := j.store.Append(ctx, j.stream, version, entries); err != nil {
		return fmt.Errorf("eventsource: journal append: %w", err)
	}
	return nil
}

// Replay returns the full journal stream in order, for audit.
func (j *Journal) Replay(ctx context.Context) ([]*Event, error) {
	return j.store.Read(ctx, j.stream, 0)
}
