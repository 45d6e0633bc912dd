package spaced_repetition

import (
	"sort"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Mastery score bounds.
const (
	MinMastery = 0
	MaxMastery = 10
	MaxBox     = 5
)

// ProgressStore holds per-word learning state for the whole
// vocabulary, keyed by the word's canonical form. Entries are created
// with zero state for every vocabulary word and merged with any
// persisted state found under the same key; they are never deleted.
type ProgressStore struct {
	entries map[string]*models.WordProgress
}

// NewProgressStore creates a store with a default-initialized entry
// for every vocabulary word, overlaid with persisted state where a
// matching key exists.
func NewProgressStore(vocab []models.Word, persisted map[string]models.WordProgress) *ProgressStore {
	entries := make(map[string]*models.WordProgress, len(vocab))
	for _, w := range vocab {
		if saved, ok := persisted[w.English]; ok {
			entry := saved
			entry.Word = w.English
			entries[w.English] = &entry
		} else {
			entries[w.English] = &models.WordProgress{Word: w.English}
		}
	}
	return &ProgressStore{entries: entries}
}

// Get returns the progress entry for a word, creating a
// default-initialized entry if none exists.
func (s *ProgressStore) Get(word string) *models.WordProgress {
	if entry, ok := s.entries[word]; ok {
		return entry
	}
	entry := &models.WordProgress{Word: word}
	s.entries[word] = entry
	return entry
}

// Record applies the Leitner and mastery update rules for one answer.
// Correct answers raise mastery (capped at 10) and promote the box
// (capped at 5); incorrect answers lower mastery (floored at 0) and
// demote the box, which never drops below 1 once a word has been
// reviewed.
func (s *ProgressStore) Record(word string, correct bool, responseTime float64, session int, now time.Time) {
	entry := s.Get(word)
	entry.Attempts++
	entry.LastReviewedSession = session
	entry.LastReviewDate = now
	entry.AddResponseTime(responseTime)

	if correct {
		entry.Correct++
		entry.Mastery = min(MaxMastery, entry.Mastery+1)
		entry.Box = min(MaxBox, entry.Box+1)
	} else {
		entry.Mastery = max(MinMastery, entry.Mastery-1)
		if entry.Box > 0 {
			entry.Box = max(1, entry.Box-1)
		} else {
			entry.Box = 1
		}
	}
}

// Snapshot returns a copy of all entries for persistence.
func (s *ProgressStore) Snapshot() map[string]models.WordProgress {
	out := make(map[string]models.WordProgress, len(s.entries))
	for word, entry := range s.entries {
		copied := *entry
		copied.ResponseTimes = append([]float64(nil), entry.ResponseTimes...)
		out[word] = copied
	}
	return out
}

// Len returns the number of tracked words.
func (s *ProgressStore) Len() int {
	return len(s.entries)
}

// LearnedCount returns how many words have at least one attempt.
func (s *ProgressStore) LearnedCount() int {
	count := 0
	for _, entry := range s.entries {
		if entry.Attempts > 0 {
			count++
		}
	}
	return count
}

// MasteredCount returns how many words have mastery of 8 or higher.
func (s *ProgressStore) MasteredCount() int {
	count := 0
	for _, entry := range s.entries {
		if entry.Mastery >= 8 {
			count++
		}
	}
	return count
}

// TopMastered returns up to n attempted words with the highest
// mastery, strongest first. Ties order alphabetically so the listing
// is stable.
func (s *ProgressStore) TopMastered(n int) []models.WordProgress {
	var top []models.WordProgress
	for _, entry := range s.entries {
		if entry.Attempts == 0 {
			continue
		}
		copied := *entry
		copied.ResponseTimes = append([]float64(nil), entry.ResponseTimes...)
		top = append(top, copied)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Mastery != top[j].Mastery {
			return top[i].Mastery > top[j].Mastery
		}
		return top[i].Word < top[j].Word
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
