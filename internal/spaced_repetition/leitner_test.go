package spaced_repetition

import (
	"testing"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

func TestBaseInterval(t *testing.T) {
	leitner := NewLeitner()

	tests := []struct {
		box  int
		want int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 7},
		{5, 15},
		{0, 15},  // not in the schedule, falls through to the default
		{6, 15},  // beyond the last box
		{-1, 15}, // nonsense box
	}
	for _, tt := range tests {
		if got := leitner.BaseInterval(tt.box); got != tt.want {
			t.Errorf("BaseInterval(%d) = %d, want %d", tt.box, got, tt.want)
		}
	}
}

func TestIsDue(t *testing.T) {
	leitner := NewLeitner()

	tests := []struct {
		name           string
		box            int
		lastSession    int
		currentSession int
		interval       int
		want           bool
	}{
		{"box zero never due", 0, 0, 100, 1, false},
		{"interval not yet elapsed", 1, 5, 5, 1, false},
		{"exactly at interval", 1, 5, 6, 1, true},
		{"past interval", 3, 2, 10, 4, true},
		{"long interval pending", 5, 1, 10, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &models.WordProgress{
				Word:                "dog",
				Box:                 tt.box,
				LastReviewedSession: tt.lastSession,
			}
			got := leitner.IsDue(progress, tt.currentSession, tt.interval)
			if got != tt.want {
				t.Errorf("IsDue(box=%d, last=%d, current=%d, interval=%d) = %v, want %v",
					tt.box, tt.lastSession, tt.currentSession, tt.interval, got, tt.want)
			}
		})
	}
}
