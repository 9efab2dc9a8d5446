package eventsource

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed Store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a SQLite-backed store at the given
// path. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("eventsource: open database: %w", err)
	}

	// One connection keeps ":memory:" databases from resetting per
	// pooled connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("eventsource: migrate: %w", err)
	}
	return store, nil
}

// migrate creates the journal schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		stream    TEXT NOT NULL,
		version   INTEGER NOT NULL,
		id        TEXT NOT NULL,
		type      TEXT NOT NULL,
		topics    TEXT,
		data      BLOB,
		timestamp TEXT NOT NULL,
		PRIMARY KEY (stream, version)
	);

	CREATE INDEX IF NOT EXISTS idx_events_type ON events(stream, type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append adds events to a stream with optimistic concurrency.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("eventsource: begin: %w", err)
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, stream)
	if err != nil {
		return 0, err
	}
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, event := range events {
		version++
		event.Stream = stream
		event.Version = version

		var topics []byte
		if len(event.Topics) > 0 {
			topics, err = json.Marshal(event.Topics)
			if err != nil {
				return 0, fmt.Errorf("eventsource: encode topics: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, topics, data, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			stream, version, event.ID, event.Type, topics, []byte(event.Data),
			event.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("eventsource: insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("eventsource: commit: %w", err)
	}
	return version, nil
}

// Read returns events with Version >= from.
func (s *SQLiteStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, topics, data, timestamp
		 FROM events WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, from,
	)
	if err != nil {
		return nil, fmt.Errorf("eventsource: query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{Stream: stream}
		var topics, data []byte
		var ts string
		if err := rows.Scan(&event.Version, &event.ID, &event.Type, &topics, &data, &ts); err != nil {
			return nil, fmt.Errorf("eventsource: scan event: %w", err)
		}
		if len(topics) > 0 {
			if err := json.Unmarshal(topics, &event.Topics); err != nil {
				return nil, fmt.Errorf("eventsource: decode topics: %w", err)
			}
		}
		if len(data) > 0 {
			event.Data = json.RawMessage(data)
		}
		event.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("eventsource: parse timestamp: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// StreamVersion returns the last version in a stream, -1 if absent.
func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream)

	var version sql.NullInt64
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, nil
		}
		return 0, fmt.Errorf("eventsource: stream version: %w", err)
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, stream string) (int, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream)

	var version sql.NullInt64
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("eventsource: stream version: %w", err)
	}
	if !version.Valid {
		return -1, nil
	}
	return int(version.Int64), nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
