package eventsource

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned when an append's expected version does
// not match the stream's current version.
var ErrConcurrencyConflict = errors.New("eventsource: concurrency conflict")

// Store is an append-only event journal.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of
	// the last event already in the stream, -1 for a new stream; a
	// mismatch returns ErrConcurrencyConflict. Returns the version of the
	// last appended event.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events of a stream with Version >= from, in order.
	Read(ctx context.Context, stream string, from int) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// -1 if the stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// Close releases backend resources.
	Close() error
}

// MemoryStore is the in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream with optimistic concurrency.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.streams[stream]) - 1
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, event := range events {
		version++
		event.Stream = stream
		event.Version = version
		s.streams[stream] = append(s.streams[stream], event)
	}
	return version, nil
}

// Read returns events with Version >= from.
func (s *MemoryStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.streams[stream]
	if from < 0 {
		from = 0
	}
	if from >= len(events) {
		return nil, nil
	}

	out := make([]*Event, len(events)-from)
	copy(out, events[from:])
	return out, nil
}

// StreamVersion returns the last version in a stream, -1 if absent.
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
