package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// ProgressRepository handles database operations for per-word progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// progressRow mirrors the word_progress table; the response time
// history is stored as a JSON array in a text column.
type progressRow struct {
	Word                string       `db:"word"`
	Mastery             int          `db:"mastery"`
	Attempts            int          `db:"attempts"`
	Correct             int          `db:"correct"`
	Box                 int          `db:"box"`
	LastReviewedSession int          `db:"last_reviewed_session"`
	LastReviewDate      sql.NullTime `db:"last_review_date"`
	ResponseTimes       string       `db:"response_times"`
}

// LoadAll returns all persisted progress entries keyed by word. Rows
// that cannot be decoded are skipped so a single corrupt entry never
// blocks loading.
func (r *ProgressRepository) LoadAll() (map[string]models.WordProgress, error) {
	var rows []progressRow
	err := DB.Select(&rows, "SELECT * FROM word_progress")
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %v", err)
	}

	progress := make(map[string]models.WordProgress, len(rows))
	for _, row := range rows {
		entry := models.WordProgress{
			Word:                row.Word,
			Mastery:             row.Mastery,
			Attempts:            row.Attempts,
			Correct:             row.Correct,
			Box:                 row.Box,
			LastReviewedSession: row.LastReviewedSession,
		}
		if row.LastReviewDate.Valid {
			entry.LastReviewDate = row.LastReviewDate.Time
		}
		if err := json.Unmarshal([]byte(row.ResponseTimes), &entry.ResponseTimes); err != nil {
			log.Printf("Warning: skipping corrupt response times for word %q: %v", row.Word, err)
			entry.ResponseTimes = nil
		}
		progress[row.Word] = entry
	}
	return progress, nil
}

// SaveAll upserts every progress entry.
func (r *ProgressRepository) SaveAll(progress map[string]models.WordProgress) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO word_progress (
				word, mastery, attempts, correct, box,
				last_reviewed_session, last_review_date, response_times
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (word) DO UPDATE SET
				mastery = EXCLUDED.mastery,
				attempts = EXCLUDED.attempts,
				correct = EXCLUDED.correct,
				box = EXCLUDED.box,
				last_reviewed_session = EXCLUDED.last_reviewed_session,
				last_review_date = EXCLUDED.last_review_date,
				response_times = EXCLUDED.response_times
		`
	} else {
		query = `
			INSERT OR REPLACE INTO word_progress (
				word, mastery, attempts, correct, box,
				last_reviewed_session, last_review_date, response_times
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
	}

	for word, entry := range progress {
		times, err := json.Marshal(orEmptyFloats(entry.ResponseTimes))
		if err != nil {
			return fmt.Errorf("failed to encode response times for %q: %v", word, err)
		}
		var reviewed sql.NullTime
		if !entry.LastReviewDate.IsZero() {
			reviewed = sql.NullTime{Time: entry.LastReviewDate, Valid: true}
		}
		_, err = DB.Exec(query,
			word,
			entry.Mastery,
			entry.Attempts,
			entry.Correct,
			entry.Box,
			entry.LastReviewedSession,
			reviewed,
			string(times),
		)
		if err != nil {
			return fmt.Errorf("failed to save progress for %q: %v", word, err)
		}
	}
	return nil
}

// orEmptyFloats keeps nil slices serializing as [] rather than null.
func orEmptyFloats(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return values
}
