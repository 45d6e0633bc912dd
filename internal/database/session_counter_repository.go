package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// SessionCounterRepository handles the single persisted session
// counter value.
type SessionCounterRepository struct{}

// NewSessionCounterRepository creates a new repository instance
func NewSessionCounterRepository() *SessionCounterRepository {
	return &SessionCounterRepository{}
}

// Load returns the persisted counter, or 0 when none exists yet.
func (r *SessionCounterRepository) Load() (int, error) {
	var counter int
	err := DB.Get(&counter, "SELECT counter FROM session_counter WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load session counter: %v", err)
	}
	return counter, nil
}

// Save upserts the counter.
func (r *SessionCounterRepository) Save(counter int) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO session_counter (id, counter) VALUES (1, $1)
			ON CONFLICT (id) DO UPDATE SET counter = EXCLUDED.counter
		`
	} else {
		query = "INSERT OR REPLACE INTO session_counter (id, counter) VALUES (1, $1)"
	}
	if _, err := DB.Exec(query, counter); err != nil {
		return fmt.Errorf("failed to save session counter: %v", err)
	}
	return nil
}
