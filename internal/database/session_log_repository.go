package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// SessionLogRepository handles database operations for the bounded
// session history.
type SessionLogRepository struct{}

// NewSessionLogRepository creates a new repository instance
func NewSessionLogRepository() *SessionLogRepository {
	return &SessionLogRepository{}
}

// sessionLogRow mirrors the session_log table.
type sessionLogRow struct {
	ID              int          `db:"id"`
	Session         int          `db:"session"`
	Timestamp       sql.NullTime `db:"timestamp"`
	WordCount       int          `db:"word_count"`
	Accuracy        float64      `db:"accuracy"`
	AvgResponseTime float64      `db:"avg_response_time"`
	WordAccuracies  string       `db:"word_accuracies"`
	Features        string       `db:"features"`
	Prediction      string       `db:"prediction"`
}

// Load returns the persisted session log ordered oldest first. Rows
// with corrupt embedded documents are kept with those fields reset.
func (r *SessionLogRepository) Load() (*models.SessionLog, error) {
	var rows []sessionLogRow
	err := DB.Select(&rows, "SELECT * FROM session_log ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to load session log: %v", err)
	}

	sessionLog := &models.SessionLog{}
	for _, row := range rows {
		entry := models.SessionLogEntry{
			Session:         row.Session,
			WordCount:       row.WordCount,
			Accuracy:        row.Accuracy,
			AvgResponseTime: row.AvgResponseTime,
		}
		if row.Timestamp.Valid {
			entry.Timestamp = row.Timestamp.Time
		}
		if err := json.Unmarshal([]byte(row.WordAccuracies), &entry.WordAccuracies); err != nil {
			log.Printf("Warning: corrupt word accuracies in session %d: %v", row.Session, err)
		}
		if err := json.Unmarshal([]byte(row.Features), &entry.Features); err != nil {
			log.Printf("Warning: corrupt features in session %d: %v", row.Session, err)
		}
		if err := json.Unmarshal([]byte(row.Prediction), &entry.Prediction); err != nil {
			log.Printf("Warning: corrupt prediction in session %d: %v", row.Session, err)
		}
		sessionLog.Append(entry)
	}
	return sessionLog, nil
}

// Save replaces the stored history with the given log, already capped
// at the 50 most recent entries.
func (r *SessionLogRepository) Save(sessionLog *models.SessionLog) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session_log"); err != nil {
		return fmt.Errorf("failed to clear session log: %v", err)
	}

	query := `
		INSERT INTO session_log (
			session, timestamp, word_count, accuracy,
			avg_response_time, word_accuracies, features, prediction
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, entry := range sessionLog.Entries {
		accuracies, err := json.Marshal(orEmptyFloats(entry.WordAccuracies))
		if err != nil {
			return fmt.Errorf("failed to encode word accuracies: %v", err)
		}
		features, err := json.Marshal(entry.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features: %v", err)
		}
		prediction, err := json.Marshal(entry.Prediction)
		if err != nil {
			return fmt.Errorf("failed to encode prediction: %v", err)
		}

		_, err = tx.Exec(query,
			entry.Session,
			sql.NullTime{Time: entry.Timestamp, Valid: !entry.Timestamp.IsZero()},
			entry.WordCount,
			entry.Accuracy,
			entry.AvgResponseTime,
			string(accuracies),
			string(features),
			string(prediction),
		)
		if err != nil {
			return fmt.Errorf("failed to save session log entry: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session log: %v", err)
	}
	return nil
}
