package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/siftdb/sift/internal/ui/views/results"
)

// StateStore persists per-buffer results view state across sessions.
type StateStore struct {
	db *DB
}

// NewStateStore creates a new state store.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Save writes the view state for a buffer URI, replacing any previous
// record.
func (s *StateStore) Save(uri string, state *results.ViewState) error {
	if state == nil {
		return nil
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.conn.Exec(`
		INSERT INTO view_state (uri, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, uri, string(blob), time.Now())
	return err
}

// Load reads the view state recorded for a buffer URI. A missing record
// yields a fresh zero state, not an error.
func (s *StateStore) Load(uri string) (*results.ViewState, error) {
	var blob string
	err := s.db.conn.QueryRow(`SELECT state FROM view_state WHERE uri = ?`, uri).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return &results.ViewState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state results.ViewState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		// Corrupt record: start over rather than refuse to open.
		return &results.ViewState{}, nil
	}
	return &state, nil
}

// Delete removes the recorded state for a buffer URI.
func (s *StateStore) Delete(uri string) error {
	_, err := s.db.conn.Exec(`DELETE FROM view_state WHERE uri = ?`, uri)
	return err
}
