package personalization

import (
	"math"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Session size bounds for predictions.
const (
	MinSessionSize  = 8
	MaxSessionSize  = 25
	BaseSessionSize = 15
)

// Feature defaults used when not enough history exists.
const (
	defaultRecentAccuracy  = 0.75
	defaultAvgResponseTime = 3.0
	defaultHoursSinceLast  = 24.0
	maxHoursSinceLast      = 168.0
)

// Model derives personalized review intervals and session predictions
// from aggregate learner signals. It is a deterministic rule cascade:
// cheap, explainable, and needs no training data.
type Model struct {
	State   *models.PersonalizationState
	Log     *models.SessionLog
	leitner *spaced_repetition.Leitner
}

// New creates a model over the given state and session log.
func New(state *models.PersonalizationState, log *models.SessionLog, leitner *spaced_repetition.Leitner) *Model {
	if state == nil {
		state = models.DefaultPersonalizationState()
	}
	if log == nil {
		log = &models.SessionLog{}
	}
	return &Model{State: state, Log: log, leitner: leitner}
}

// PersonalizedInterval returns the review interval for a word in the
// given box. With fewer than 3 recorded outcomes the fixed base
// schedule applies unchanged; otherwise the success rate over the last
// 5 outcomes stretches or shrinks the base interval.
func (m *Model) PersonalizedInterval(word string, box int) int {
	base := m.leitner.BaseInterval(box)

	history := m.State.ForgetRates[word]
	if len(history) < 3 {
		return base
	}

	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	correct := 0
	for _, rec := range recent {
		if rec.Correct {
			correct++
		}
	}
	rate := float64(correct) / 5.0

	multiplier := 0.6
	if rate >= 0.9 {
		multiplier = 1.5
	} else if rate >= 0.7 {
		multiplier = 1.0
	}

	interval := int(math.Floor(float64(base) * multiplier))
	if interval < 1 {
		interval = 1
	}
	return interval
}

// RecordOutcome appends a review outcome to the word's bounded history.
func (m *Model) RecordOutcome(word string, correct bool, daysSinceLast float64, now time.Time) {
	m.State.AddForgetRecord(word, models.ForgetRecord{
		Correct:       correct,
		DaysSinceLast: daysSinceLast,
		Timestamp:     now,
	})
}

// ExtractFeatures computes the learner signals used to plan the next
// session from the progress store and the session log.
func (m *Model) ExtractFeatures(store *spaced_repetition.ProgressStore, now time.Time) models.Features {
	return models.Features{
		RecentAccuracy:       m.recentAccuracy(),
		AvgResponseTime:      m.avgResponseTime(),
		FatigueScore:         m.fatigueScore(),
		ForgetRate:           forgetRate(store),
		SessionCount:         len(m.Log.Entries),
		TimeSinceLastSession: m.hoursSinceLastSession(now),
	}
}

// recentAccuracy is the mean of the last 3 session accuracies.
func (m *Model) recentAccuracy() float64 {
	trends := m.State.AccuracyTrends
	if len(trends) < 3 {
		return defaultRecentAccuracy
	}
	recent := trends[len(trends)-3:]
	sum := 0.0
	for _, acc := range recent {
		sum += acc
	}
	return sum / float64(len(recent))
}

// avgResponseTime is the mean response time over the last 5 sessions.
func (m *Model) avgResponseTime() float64 {
	recent := m.Log.LastN(5)
	if len(recent) == 0 {
		return defaultAvgResponseTime
	}
	sum := 0.0
	for _, entry := range recent {
		sum += entry.AvgResponseTime
	}
	return sum / float64(len(recent))
}

// fatigueScore is the accuracy drop between the first and second half
// of the most recent session. Sessions of 5 answers or fewer carry no
// fatigue signal.
func (m *Model) fatigueScore() float64 {
	last := m.Log.Last()
	if last == nil || len(last.WordAccuracies) <= 5 {
		return 0
	}
	seq := last.WordAccuracies
	half := len(seq) / 2
	firstHalf := mean(seq[:half])
	secondHalf := mean(seq[half:])
	if drop := firstHalf - secondHalf; drop > 0 {
		return drop
	}
	return 0
}

// forgetRate is the fraction of attempted words (more than one
// attempt) whose running accuracy is below 0.8.
func forgetRate(store *spaced_repetition.ProgressStore) float64 {
	attempted := 0
	forgotten := 0
	for _, entry := range store.Snapshot() {
		if entry.Attempts > 1 {
			attempted++
			if entry.AccuracyRate() < 0.8 {
				forgotten++
			}
		}
	}
	if attempted == 0 {
		return 0
	}
	return float64(forgotten) / float64(attempted)
}

// hoursSinceLastSession returns hours since the last logged session,
// capped at one week.
func (m *Model) hoursSinceLastSession(now time.Time) float64 {
	last := m.Log.Last()
	if last == nil {
		return defaultHoursSinceLast
	}
	hours := now.Sub(last.Timestamp).Hours()
	if hours > maxHoursSinceLast {
		return maxHoursSinceLast
	}
	return hours
}

// PredictSession turns extracted features into a session size and
// difficulty bias. The rule order matters: the long-gap override is
// applied after the fatigue override, so a gap over 48 hours always
// produces a review-heavy session even when the learner is fatigued.
func (m *Model) PredictSession(features models.Features) models.Prediction {
	confidenceBoost := m.State.ConfidenceLevel * 0.5
	if confidenceBoost > 0.3 {
		confidenceBoost = 0.3
	}

	var multiplier float64
	var bias models.Bias
	switch {
	case features.RecentAccuracy >= 0.85:
		multiplier = 1.3 + confidenceBoost
		bias = models.BiasChallenging
	case features.RecentAccuracy >= 0.70:
		multiplier = 1.0
		bias = models.BiasBalanced
	default:
		multiplier = 0.7
		bias = models.BiasReviewHeavy
	}

	if features.FatigueScore > m.State.FatigueThreshold {
		multiplier *= 0.8
		bias = models.BiasEasy
	}

	if features.AvgResponseTime > m.State.ResponseTimeBaseline*1.5 {
		multiplier *= 0.9
	}

	if features.TimeSinceLastSession > 48 {
		bias = models.BiasReviewHeavy
	} else if features.TimeSinceLastSession < 4 {
		multiplier *= 0.8
	}

	size := int(math.Round(BaseSessionSize * multiplier))
	if size < MinSessionSize {
		size = MinSessionSize
	}
	if size > MaxSessionSize {
		size = MaxSessionSize
	}

	confidence := m.State.ConfidenceLevel + 0.1
	if confidence > models.MaxConfidence {
		confidence = models.MaxConfidence
	}

	return models.Prediction{
		SessionSize:    size,
		DifficultyBias: bias,
		Confidence:     confidence,
	}
}

// UpdateConfidence adjusts the model's confidence based on how well
// the last prediction matched observed accuracy. Good predictions are
// rewarded faster than bad ones are punished.
func (m *Model) UpdateConfidence(predictionAccuracy float64) {
	if predictionAccuracy > 0.8 {
		m.State.ConfidenceLevel = math.Min(models.MaxConfidence, m.State.ConfidenceLevel+0.05)
	} else {
		m.State.ConfidenceLevel = math.Max(models.MinConfidence, m.State.ConfidenceLevel-0.02)
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
