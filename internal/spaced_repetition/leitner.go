package spaced_repetition

import (
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Leitner implements the Leitner box scheduling system. Intervals are
// measured in completed sessions rather than days.
type Leitner struct {
	// Box to required interval in sessions
	Schedule map[int]int
	// Interval used for boxes missing from the schedule
	DefaultInterval int
}

// NewLeitner creates a new Leitner scheduler with the default schedule
func NewLeitner() *Leitner {
	return &Leitner{
		Schedule: map[int]int{
			1: 1,  // Review after 1 session
			2: 2,  // Review after 2 sessions
			3: 4,  // Review after 4 sessions
			4: 7,  // Review after 7 sessions
			5: 15, // Review after 15 sessions
		},
		DefaultInterval: 15,
	}
}

// BaseInterval returns the fixed required interval for a box.
func (l *Leitner) BaseInterval(box int) int {
	if interval, ok := l.Schedule[box]; ok {
		return interval
	}
	return l.DefaultInterval
}

// IsDue reports whether a word is due for review: the word must have
// been reviewed at least once (box > 0) and the number of sessions
// since its last review must meet the given interval. Words in box 0
// are new, never due.
func (l *Leitner) IsDue(progress *models.WordProgress, currentSession, interval int) bool {
	if progress.Box <= 0 {
		return false
	}
	return currentSession-progress.LastReviewedSession >= interval
}
