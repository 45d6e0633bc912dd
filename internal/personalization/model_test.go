package personalization

import (
	"testing"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

func newTestModel() *Model {
	return New(models.DefaultPersonalizationState(), &models.SessionLog{}, spaced_repetition.NewLeitner())
}

func recordOutcomes(m *Model, word string, outcomes []bool) {
	now := time.Now()
	for _, correct := range outcomes {
		m.RecordOutcome(word, correct, 1.0, now)
	}
}

func TestPersonalizedInterval(t *testing.T) {
	tests := []struct {
		name     string
		box      int
		outcomes []bool
		want     int
	}{
		{"no history uses base", 3, nil, 4},
		{"two outcomes still base", 3, []bool{true, false}, 4},
		{"five correct stretches box 5", 5, []bool{true, true, true, true, true}, 22},
		{"four of five holds box 5", 5, []bool{false, true, true, true, true}, 15},
		{"three of five shrinks box 5", 5, []bool{false, false, true, true, true}, 9},
		{"three correct counts against five", 3, []bool{true, true, true}, 2},
		{"shrunk interval never below one", 1, []bool{false, false, false}, 1},
		{"only last five outcomes count", 5, []bool{false, false, false, true, true, true, true, true}, 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			recordOutcomes(m, "dog", tt.outcomes)
			if got := m.PersonalizedInterval("dog", tt.box); got != tt.want {
				t.Errorf("PersonalizedInterval(box=%d) = %d, want %d", tt.box, got, tt.want)
			}
		})
	}
}

func TestPersonalizedInterval_PerWordHistory(t *testing.T) {
	m := newTestModel()
	recordOutcomes(m, "dog", []bool{false, false, false})

	// "cat" has no history, its interval must stay at the base
	if got := m.PersonalizedInterval("cat", 5); got != 15 {
		t.Errorf("PersonalizedInterval for untracked word = %d, want 15", got)
	}
	if got := m.PersonalizedInterval("dog", 5); got != 9 {
		t.Errorf("PersonalizedInterval for struggling word = %d, want 9", got)
	}
}

func TestRecordOutcome_BoundedHistory(t *testing.T) {
	m := newTestModel()
	recordOutcomes(m, "dog", make([]bool, 15))

	if got := len(m.State.ForgetRates["dog"]); got != models.MaxForgetRecords {
		t.Errorf("history length = %d, want %d", got, models.MaxForgetRecords)
	}
}

func TestExtractFeatures_Defaults(t *testing.T) {
	m := newTestModel()
	store := spaced_repetition.NewProgressStore([]models.Word{{English: "dog", Spanish: "perro"}}, nil)

	features := m.ExtractFeatures(store, time.Now())

	if features.RecentAccuracy != 0.75 {
		t.Errorf("RecentAccuracy = %v, want 0.75", features.RecentAccuracy)
	}
	if features.AvgResponseTime != 3.0 {
		t.Errorf("AvgResponseTime = %v, want 3.0", features.AvgResponseTime)
	}
	if features.FatigueScore != 0 {
		t.Errorf("FatigueScore = %v, want 0", features.FatigueScore)
	}
	if features.ForgetRate != 0 {
		t.Errorf("ForgetRate = %v, want 0", features.ForgetRate)
	}
	if features.SessionCount != 0 {
		t.Errorf("SessionCount = %d, want 0", features.SessionCount)
	}
	if features.TimeSinceLastSession != 24.0 {
		t.Errorf("TimeSinceLastSession = %v, want 24.0", features.TimeSinceLastSession)
	}
}

func TestExtractFeatures_FromHistory(t *testing.T) {
	m := newTestModel()
	m.State.AccuracyTrends = []float64{0.5, 0.6, 0.7, 0.8}

	now := time.Now()
	m.Log.Append(models.SessionLogEntry{
		Session:         1,
		Timestamp:       now.Add(-10 * time.Hour),
		AvgResponseTime: 2.0,
		// Accuracy drops from 1.0 to 0.25 between halves
		WordAccuracies: []float64{1, 1, 1, 1, 0, 0, 0, 1},
	})
	m.Log.Append(models.SessionLogEntry{
		Session:         2,
		Timestamp:       now.Add(-6 * time.Hour),
		AvgResponseTime: 4.0,
		WordAccuracies:  []float64{1, 1, 1, 1, 0, 0, 0, 1},
	})

	store := spaced_repetition.NewProgressStore([]models.Word{
		{English: "dog", Spanish: "perro"},
		{English: "cat", Spanish: "gato"},
		{English: "sun", Spanish: "sol"},
	}, map[string]models.WordProgress{
		"dog": {Word: "dog", Attempts: 4, Correct: 4}, // 1.00, retained
		"cat": {Word: "cat", Attempts: 4, Correct: 2}, // 0.50, forgotten
		"sun": {Word: "sun", Attempts: 1, Correct: 1}, // single attempt, excluded
	})

	features := m.ExtractFeatures(store, now)

	if want := (0.6 + 0.7 + 0.8) / 3; !almostEqual(features.RecentAccuracy, want) {
		t.Errorf("RecentAccuracy = %v, want %v", features.RecentAccuracy, want)
	}
	if !almostEqual(features.AvgResponseTime, 3.0) {
		t.Errorf("AvgResponseTime = %v, want 3.0", features.AvgResponseTime)
	}
	if want := 1.0 - 0.25; !almostEqual(features.FatigueScore, want) {
		t.Errorf("FatigueScore = %v, want %v", features.FatigueScore, want)
	}
	if !almostEqual(features.ForgetRate, 0.5) {
		t.Errorf("ForgetRate = %v, want 0.5", features.ForgetRate)
	}
	if features.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", features.SessionCount)
	}
	if !almostEqual(features.TimeSinceLastSession, 6.0) {
		t.Errorf("TimeSinceLastSession = %v, want 6.0", features.TimeSinceLastSession)
	}
}

func TestExtractFeatures_HoursCappedAtWeek(t *testing.T) {
	m := newTestModel()
	now := time.Now()
	m.Log.Append(models.SessionLogEntry{Session: 1, Timestamp: now.Add(-300 * time.Hour)})

	features := m.ExtractFeatures(spaced_repetition.NewProgressStore(nil, nil), now)
	if features.TimeSinceLastSession != 168.0 {
		t.Errorf("TimeSinceLastSession = %v, want capped 168.0", features.TimeSinceLastSession)
	}
}

func TestPredictSession_Biases(t *testing.T) {
	base := models.Features{
		RecentAccuracy:       0.75,
		AvgResponseTime:      3.0,
		FatigueScore:         0,
		SessionCount:         5,
		TimeSinceLastSession: 24,
	}

	tests := []struct {
		name     string
		mutate   func(*models.Features)
		wantBias models.Bias
		wantSize int
	}{
		{
			"steady learner gets balanced",
			func(f *models.Features) {},
			models.BiasBalanced, 15,
		},
		{
			"high accuracy gets challenging",
			func(f *models.Features) { f.RecentAccuracy = 0.9 },
			// 15 * (1.3 + 0.25 confidence boost) rounds to 23
			models.BiasChallenging, 23,
		},
		{
			"low accuracy gets review heavy",
			func(f *models.Features) { f.RecentAccuracy = 0.5 },
			models.BiasReviewHeavy, 11,
		},
		{
			"fatigue overrides to easy",
			func(f *models.Features) { f.FatigueScore = 0.5 },
			models.BiasEasy, 12,
		},
		{
			"long gap overrides fatigue",
			func(f *models.Features) {
				f.FatigueScore = 0.5
				f.TimeSinceLastSession = 72
			},
			models.BiasReviewHeavy, 12,
		},
		{
			"slow responses shrink the session",
			func(f *models.Features) { f.AvgResponseTime = 5.0 },
			models.BiasBalanced, 14,
		},
		{
			"short gap shrinks the session",
			func(f *models.Features) { f.TimeSinceLastSession = 2 },
			models.BiasBalanced, 12,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			features := base
			tt.mutate(&features)
			got := m.PredictSession(features)
			if got.DifficultyBias != tt.wantBias {
				t.Errorf("DifficultyBias = %q, want %q", got.DifficultyBias, tt.wantBias)
			}
			if got.SessionSize != tt.wantSize {
				t.Errorf("SessionSize = %d, want %d", got.SessionSize, tt.wantSize)
			}
		})
	}
}

func TestPredictSession_SizeAlwaysInBounds(t *testing.T) {
	accuracies := []float64{0, 0.5, 0.7, 0.85, 1.0}
	fatigues := []float64{0, 0.5, 1.0}
	responseTimes := []float64{0.5, 3.0, 10.0}
	gaps := []float64{0, 2, 24, 72, 168}
	confidences := []float64{0.1, 0.5, 1.0}

	for _, acc := range accuracies {
		for _, fat := range fatigues {
			for _, rt := range responseTimes {
				for _, gap := range gaps {
					for _, conf := range confidences {
						m := newTestModel()
						m.State.ConfidenceLevel = conf
						got := m.PredictSession(models.Features{
							RecentAccuracy:       acc,
							AvgResponseTime:      rt,
							FatigueScore:         fat,
							TimeSinceLastSession: gap,
						})
						if got.SessionSize < MinSessionSize || got.SessionSize > MaxSessionSize {
							t.Fatalf("SessionSize = %d out of [%d,%d] for acc=%v fat=%v rt=%v gap=%v conf=%v",
								got.SessionSize, MinSessionSize, MaxSessionSize, acc, fat, rt, gap, conf)
						}
						if got.Confidence < models.MinConfidence || got.Confidence > models.MaxConfidence {
							t.Fatalf("Confidence = %v out of bounds", got.Confidence)
						}
					}
				}
			}
		}
	}
}

func TestPredictSession_ConfidenceReported(t *testing.T) {
	m := newTestModel()
	m.State.ConfidenceLevel = 0.95

	got := m.PredictSession(models.Features{RecentAccuracy: 0.75, AvgResponseTime: 3.0, TimeSinceLastSession: 24})
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want capped 1.0", got.Confidence)
	}
}

func TestUpdateConfidence(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		accuracy float64
		want     float64
	}{
		{"good prediction rewarded", 0.5, 0.9, 0.55},
		{"bad prediction punished", 0.5, 0.3, 0.48},
		{"reward capped at one", 0.98, 1.0, 1.0},
		{"punishment floored", 0.11, 0.0, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m.State.ConfidenceLevel = tt.start
			m.UpdateConfidence(tt.accuracy)
			if !almostEqual(m.State.ConfidenceLevel, tt.want) {
				t.Errorf("ConfidenceLevel = %v, want %v", m.State.ConfidenceLevel, tt.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
