package models

import "time"

// MaxResponseTimes bounds the per-word response latency history.
const MaxResponseTimes = 10

// WordProgress tracks the learner's progress with a specific word
// using the Leitner box system.
type WordProgress struct {
	Word                string    `json:"word" db:"word"`
	Mastery             int       `json:"mastery" db:"mastery"`                             // Proficiency score, 0-10
	Attempts            int       `json:"attempts" db:"attempts"`                           // Total answers recorded
	Correct             int       `json:"correct" db:"correct"`                             // Total correct answers
	Box                 int       `json:"box" db:"box"`                                     // Leitner box, 0-5; 0 = never reviewed
	LastReviewedSession int       `json:"last_reviewed_session" db:"last_reviewed_session"` // Session index of the last review
	LastReviewDate      time.Time `json:"last_review_date" db:"last_review_date"`           // Wall-clock time of the last review
	ResponseTimes       []float64 `json:"response_times"`                                   // Last 10 response latencies in seconds, oldest first
}

// AddResponseTime appends a response latency, evicting the oldest
// entry once the history holds MaxResponseTimes values.
func (p *WordProgress) AddResponseTime(seconds float64) {
	p.ResponseTimes = append(p.ResponseTimes, seconds)
	if len(p.ResponseTimes) > MaxResponseTimes {
		p.ResponseTimes = p.ResponseTimes[len(p.ResponseTimes)-MaxResponseTimes:]
	}
}

// AccuracyRate returns the running accuracy for the word, or 0 if it
// has never been attempted.
func (p *WordProgress) AccuracyRate() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempts)
}
