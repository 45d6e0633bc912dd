package planner

import (
	"math/rand"
	"sort"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/personalization"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Mode selects the planning strategy for a session.
type Mode string

const (
	// ModeNew plans a mixed session of new and previously seen words.
	ModeNew Mode = "new"
	// ModeRevision plans a session from words due for review.
	ModeRevision Mode = "revision"
)

// MinRevisionWords is the number of due words required before a
// revision session is offered.
const MinRevisionWords = 5

// proportions are the bucket shares applied per difficulty bias, in
// order: new, struggling, progressing, strong.
var proportions = map[models.Bias][4]float64{
	models.BiasChallenging: {0.50, 0.20, 0.25, 0.05},
	models.BiasReviewHeavy: {0.20, 0.50, 0.25, 0.05},
	models.BiasEasy:        {0.30, 0.30, 0.30, 0.10},
	models.BiasBalanced:    {0.40, 0.30, 0.25, 0.05},
}

// Plan is the outcome of planning one session: the words to present in
// order, the new words among them, and the features and prediction the
// selection was based on.
type Plan struct {
	Words      []models.Word
	Introduced []models.Word
	Features   models.Features
	Prediction models.Prediction
}

// Planner selects the word set for the next session using the
// personalization model's predicted size and difficulty bias.
type Planner struct {
	leitner *spaced_repetition.Leitner
	model   *personalization.Model
	rng     *rand.Rand
}

// New creates a planner. The random source is injected so selections
// can be made deterministic in tests.
func New(leitner *spaced_repetition.Leitner, model *personalization.Model, rng *rand.Rand) *Planner {
	return &Planner{leitner: leitner, model: model, rng: rng}
}

// DueWords returns the words due for review at the current session
// index, using each word's personalized interval. Words in box 0 are
// never due.
func (p *Planner) DueWords(vocab []models.Word, store *spaced_repetition.ProgressStore, currentSession int) []models.Word {
	var due []models.Word
	for _, w := range vocab {
		progress := store.Get(w.English)
		if progress.Box <= 0 {
			continue
		}
		interval := p.model.PersonalizedInterval(w.English, progress.Box)
		if p.leitner.IsDue(progress, currentSession, interval) {
			due = append(due, w)
		}
	}
	return due
}

// PlanSession builds the next session for the given mode.
func (p *Planner) PlanSession(vocab []models.Word, store *spaced_repetition.ProgressStore, mode Mode, currentSession int, now time.Time) Plan {
	features := p.model.ExtractFeatures(store, now)
	prediction := p.model.PredictSession(features)

	plan := Plan{Features: features, Prediction: prediction}
	if mode == ModeRevision {
		plan.Words = p.planRevision(vocab, store, currentSession, prediction.SessionSize)
		return plan
	}
	plan.Words, plan.Introduced = p.planMixed(vocab, store, prediction)
	return plan
}

// planRevision picks due words ordered weakest and longest-unreviewed
// first, up to the predicted session size.
func (p *Planner) planRevision(vocab []models.Word, store *spaced_repetition.ProgressStore, currentSession, sessionSize int) []models.Word {
	due := p.DueWords(vocab, store, currentSession)

	sort.SliceStable(due, func(i, j int) bool {
		pi := store.Get(due[i].English)
		pj := store.Get(due[j].English)
		if pi.Mastery != pj.Mastery {
			return pi.Mastery < pj.Mastery
		}
		return pi.LastReviewedSession < pj.LastReviewedSession
	})

	if len(due) > sessionSize {
		due = due[:sessionSize]
	}
	return due
}

// planMixed partitions the vocabulary into mastery buckets, draws from
// each bucket according to the bias proportions, backfills any
// shortfall, and shuffles the final selection for presentation.
func (p *Planner) planMixed(vocab []models.Word, store *spaced_repetition.ProgressStore, prediction models.Prediction) (selected, introduced []models.Word) {
	var newWords, struggling, progressing, strong []models.Word
	for _, w := range vocab {
		progress := store.Get(w.English)
		switch {
		case progress.Attempts == 0:
			newWords = append(newWords, w)
		case progress.Mastery > 0 && progress.Mastery <= 3 && progress.Attempts >= 2:
			struggling = append(struggling, w)
		case progress.Mastery >= 4 && progress.Mastery <= 6:
			progressing = append(progressing, w)
		case progress.Mastery >= 7:
			strong = append(strong, w)
		}
	}

	// Shortest new words first so early sessions stay approachable
	sort.SliceStable(newWords, func(i, j int) bool {
		return len(newWords[i].English) < len(newWords[j].English)
	})
	p.shuffle(struggling)
	p.shuffle(progressing)
	p.shuffle(strong)

	shares := proportions[prediction.DifficultyBias]
	size := prediction.SessionSize

	nNew := takeCount(size, shares[0], len(newWords))
	nStruggling := takeCount(size, shares[1], len(struggling))
	nProgressing := takeCount(size, shares[2], len(progressing))
	nStrong := takeCount(size, shares[3], len(strong))

	selected = append(selected, newWords[:nNew]...)
	selected = append(selected, struggling[:nStruggling]...)
	selected = append(selected, progressing[:nProgressing]...)
	selected = append(selected, strong[:nStrong]...)

	if len(selected) < size {
		var leftover []models.Word
		leftover = append(leftover, newWords[nNew:]...)
		leftover = append(leftover, struggling[nStruggling:]...)
		leftover = append(leftover, progressing[nProgressing:]...)
		p.shuffle(leftover)
		for _, w := range leftover {
			if len(selected) >= size {
				break
			}
			selected = append(selected, w)
		}
	}

	for _, w := range selected {
		if store.Get(w.English).Attempts == 0 {
			introduced = append(introduced, w)
		}
	}

	p.shuffle(selected)
	return selected, introduced
}

// takeCount returns how many words to draw from a bucket.
func takeCount(sessionSize int, share float64, available int) int {
	n := int(float64(sessionSize) * share)
	if n > available {
		return available
	}
	return n
}

func (p *Planner) shuffle(words []models.Word) {
	p.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
