package session

import (
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/personalization"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/planner"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

const hoursPerDay = 24

// answer is one recorded response within the running session.
type answer struct {
	word         string
	correct      bool
	responseTime float64
	wasNew       bool
}

// Summary aggregates the finished session for display.
type Summary struct {
	NewCorrect    int
	NewTotal      int
	ReviewCorrect int
	ReviewTotal   int
	Introduced    []models.Word
}

// Recorder feeds each answer into the progress store and the
// personalization model, then computes session-level aggregates at
// session end. One recorder serves exactly one session.
type Recorder struct {
	state   *State
	store   *spaced_repetition.ProgressStore
	model   *personalization.Model
	session int
	plan    planner.Plan
	answers []answer
}

// NewRecorder starts recording a session. The session counter is
// incremented here, once per started session, so the answers carry the
// new session index while the planning decisions were made against the
// previous one.
func NewRecorder(state *State, store *spaced_repetition.ProgressStore, model *personalization.Model, plan planner.Plan) *Recorder {
	state.Counter++
	return &Recorder{
		state:   state,
		store:   store,
		model:   model,
		session: state.Counter,
		plan:    plan,
	}
}

// Session returns the 1-based index of the session being recorded.
func (r *Recorder) Session() int {
	return r.session
}

// RecordAnswer applies one answer to the progress store and the
// personalization model. Answers already recorded stay valid even if
// the session is later abandoned.
func (r *Recorder) RecordAnswer(word string, correct bool, responseTime float64, now time.Time) {
	progress := r.store.Get(word)
	wasNew := progress.Attempts == 0

	daysSinceLast := 0.0
	if !wasNew && !progress.LastReviewDate.IsZero() {
		daysSinceLast = now.Sub(progress.LastReviewDate).Hours() / hoursPerDay
	}

	r.store.Record(word, correct, responseTime, r.session, now)
	r.model.RecordOutcome(word, correct, daysSinceLast, now)

	r.answers = append(r.answers, answer{
		word:         word,
		correct:      correct,
		responseTime: responseTime,
		wasNew:       wasNew,
	})
}

// FinalizeSession computes the session aggregates, appends the log
// entry, updates the accuracy trend, and feeds the prediction's
// observed quality back into the model's confidence.
func (r *Recorder) FinalizeSession(now time.Time) models.SessionLogEntry {
	entry := models.SessionLogEntry{
		Session:    r.session,
		Timestamp:  now,
		WordCount:  len(r.answers),
		Features:   r.plan.Features,
		Prediction: r.plan.Prediction,
	}
	if len(r.answers) == 0 {
		r.state.Log.Append(entry)
		return entry
	}

	correct := 0
	totalTime := 0.0
	accuracies := make([]float64, 0, len(r.answers))
	for _, a := range r.answers {
		totalTime += a.responseTime
		if a.correct {
			correct++
			accuracies = append(accuracies, 1)
		} else {
			accuracies = append(accuracies, 0)
		}
	}

	entry.Accuracy = float64(correct) / float64(len(r.answers))
	entry.AvgResponseTime = totalTime / float64(len(r.answers))
	entry.WordAccuracies = accuracies

	r.state.Log.Append(entry)
	r.state.Model.AddAccuracyTrend(entry.Accuracy)
	r.model.UpdateConfidence(predictionAccuracy(r.plan.Prediction.DifficultyBias, entry.Accuracy))

	return entry
}

// Summary returns the per-category results and the words introduced
// this session.
func (r *Recorder) Summary() Summary {
	s := Summary{Introduced: r.plan.Introduced}
	for _, a := range r.answers {
		if a.wasNew {
			s.NewTotal++
			if a.correct {
				s.NewCorrect++
			}
		} else {
			s.ReviewTotal++
			if a.correct {
				s.ReviewCorrect++
			}
		}
	}
	return s
}

// predictionAccuracy scores how well the predicted difficulty bias
// matched the observed session accuracy. A matched bias scores 1.0;
// everything else degrades with distance from the 0.8 sweet spot.
func predictionAccuracy(bias models.Bias, accuracy float64) float64 {
	switch {
	case bias == models.BiasChallenging && accuracy >= 0.8:
		return 1.0
	case bias == models.BiasEasy && accuracy >= 0.9:
		return 1.0
	case bias == models.BiasBalanced && accuracy >= 0.7 && accuracy <= 0.9:
		return 1.0
	}
	score := 1 - abs(accuracy-0.8)
	if score < 0 {
		return 0
	}
	return score
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
