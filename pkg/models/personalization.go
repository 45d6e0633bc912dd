package models

import "time"

// Bounds for the model's self-adjusting history buffers.
const (
	MaxAccuracyTrends = 10
	MaxForgetRecords  = 10
	MinConfidence     = 0.1
	MaxConfidence     = 1.0
)

// ForgetRecord captures one review outcome for a word, used to derive
// personalized review intervals.
type ForgetRecord struct {
	Correct       bool      `json:"correct"`
	DaysSinceLast float64   `json:"days_since_last"`
	Timestamp     time.Time `json:"timestamp"`
}

// PersonalizationState holds the aggregate learner signals that drive
// interval multipliers and session predictions. One instance per
// learner, persisted between sessions.
type PersonalizationState struct {
	ForgettingCurveA     float64                   `json:"forgetting_curve_a" db:"forgetting_curve_a"`         // Reserved for curve fitting
	ForgettingCurveB     float64                   `json:"forgetting_curve_b" db:"forgetting_curve_b"`         // Reserved for curve fitting
	FatigueThreshold     float64                   `json:"fatigue_threshold" db:"fatigue_threshold"`           // Accuracy drop within a session that triggers the easy bias
	ResponseTimeBaseline float64                   `json:"response_time_baseline" db:"response_time_baseline"` // Expected response time in seconds
	AccuracyTrends       []float64                 `json:"accuracy_trends"`                                    // Last 10 session accuracies, oldest first
	ForgetRates          map[string][]ForgetRecord `json:"forget_rates"`                                       // Per-word outcome history, last 10 each
	ConfidenceLevel      float64                   `json:"confidence_level" db:"confidence_level"`             // Self-adjusting, 0.1-1.0
}

// DefaultPersonalizationState returns the state used on first run and
// whenever the persisted model document cannot be read.
func DefaultPersonalizationState() *PersonalizationState {
	return &PersonalizationState{
		ForgettingCurveA:     0.3,
		ForgettingCurveB:     1.2,
		FatigueThreshold:     0.3,
		ResponseTimeBaseline: 3.0,
		AccuracyTrends:       []float64{},
		ForgetRates:          make(map[string][]ForgetRecord),
		ConfidenceLevel:      0.5,
	}
}

// AddAccuracyTrend appends a session accuracy, evicting the oldest
// entry beyond MaxAccuracyTrends.
func (s *PersonalizationState) AddAccuracyTrend(accuracy float64) {
	s.AccuracyTrends = append(s.AccuracyTrends, accuracy)
	if len(s.AccuracyTrends) > MaxAccuracyTrends {
		s.AccuracyTrends = s.AccuracyTrends[len(s.AccuracyTrends)-MaxAccuracyTrends:]
	}
}

// AddForgetRecord appends an outcome to a word's history, evicting the
// oldest entry beyond MaxForgetRecords.
func (s *PersonalizationState) AddForgetRecord(word string, rec ForgetRecord) {
	if s.ForgetRates == nil {
		s.ForgetRates = make(map[string][]ForgetRecord)
	}
	history := append(s.ForgetRates[word], rec)
	if len(history) > MaxForgetRecords {
		history = history[len(history)-MaxForgetRecords:]
	}
	s.ForgetRates[word] = history
}

// Bias is the categorical session-difficulty policy selected by the
// personalization model.
type Bias string

const (
	BiasChallenging Bias = "challenging"
	BiasBalanced    Bias = "balanced"
	BiasReviewHeavy Bias = "review_heavy"
	BiasEasy        Bias = "easy"
)

// Features are the learner signals extracted before planning a session.
type Features struct {
	RecentAccuracy       float64 `json:"recent_accuracy"`
	AvgResponseTime      float64 `json:"avg_response_time"`
	FatigueScore         float64 `json:"fatigue_score"`
	ForgetRate           float64 `json:"forget_rate"`
	SessionCount         int     `json:"session_count"`
	TimeSinceLastSession float64 `json:"time_since_last_session"` // Hours, capped at 168
}

// Prediction is the session plan produced from extracted features.
type Prediction struct {
	SessionSize    int     `json:"session_size"` // 8-25
	DifficultyBias Bias    `json:"difficulty_bias"`
	Confidence     float64 `json:"confidence"`
}
