// Package eventsource persists the domain events emitted by ledger
// operations as an append-only journal, one stream per ledger instance.
// Streams carry optimistic-concurrency versions so two writers cannot
// interleave appends. Backends: in-memory and SQLite.
package eventsource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is one journal entry.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// Stream is the journal stream the event belongs to.
	Stream string `json:"stream"`

	// Type is the domain event type name (Transfer, Mint, ...).
	Type string `json:"type"`

	// Topics are the indexed fields of the domain event.
	Topics []string `json:"topics,omitempty"`

	// Data is the JSON-encoded domain event payload.
	Data json.RawMessage `json:"data,omitempty"`

	// Version is the event's position in its stream, assigned on append.
	Version int `json:"version"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and JSON-encoded payload.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("eventsource: encode payload: %w", err)
		}
		raw = encoded
	}

	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		Version:   -1,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if e.Data == nil {
		return fmt.Errorf("eventsource: event %s has no payload", e.ID)
	}
	return json.Unmarshal(e.Data, v)
}
