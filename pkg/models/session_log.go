package models

import "time"

// MaxSessionLogEntries bounds the persisted session history.
const MaxSessionLogEntries = 50

// SessionLogEntry records the result of one completed session.
type SessionLogEntry struct {
	Session         int        `json:"session" db:"session"` // Session index, 1-based
	Timestamp       time.Time  `json:"timestamp" db:"timestamp"`
	WordCount       int        `json:"word_count" db:"word_count"`
	Accuracy        float64    `json:"accuracy" db:"accuracy"`
	AvgResponseTime float64    `json:"avg_response_time" db:"avg_response_time"`
	WordAccuracies  []float64  `json:"word_accuracies"` // Per-answer 1/0 sequence in presentation order
	Features        Features   `json:"features"`        // Features used when planning the session
	Prediction      Prediction `json:"prediction"`      // Prediction made for the session
}

// SessionLog is the append-only history of completed sessions, bounded
// to the 50 most recent entries.
type SessionLog struct {
	Entries []SessionLogEntry `json:"entries"`
}

// Append adds an entry, evicting the oldest beyond MaxSessionLogEntries.
func (l *SessionLog) Append(entry SessionLogEntry) {
	l.Entries = append(l.Entries, entry)
	if len(l.Entries) > MaxSessionLogEntries {
		l.Entries = l.Entries[len(l.Entries)-MaxSessionLogEntries:]
	}
}

// Last returns the most recent entry, or nil if the log is empty.
func (l *SessionLog) Last() *SessionLogEntry {
	if len(l.Entries) == 0 {
		return nil
	}
	return &l.Entries[len(l.Entries)-1]
}

// LastN returns up to the n most recent entries, oldest first.
func (l *SessionLog) LastN(n int) []SessionLogEntry {
	if len(l.Entries) <= n {
		return l.Entries
	}
	return l.Entries[len(l.Entries)-n:]
}
