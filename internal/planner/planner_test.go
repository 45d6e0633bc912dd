package planner

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/personalization"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

func newTestPlanner(seed int64) (*Planner, *personalization.Model) {
	model := personalization.New(models.DefaultPersonalizationState(), &models.SessionLog{}, spaced_repetition.NewLeitner())
	return New(spaced_repetition.NewLeitner(), model, rand.New(rand.NewSource(seed))), model
}

func makeVocab(n int) []models.Word {
	vocab := make([]models.Word, n)
	for i := range vocab {
		vocab[i] = models.Word{
			English: fmt.Sprintf("word%02d", i),
			Spanish: fmt.Sprintf("palabra%02d", i),
		}
	}
	return vocab
}

func TestDueWords(t *testing.T) {
	planner, _ := newTestPlanner(1)
	vocab := makeVocab(4)

	store := spaced_repetition.NewProgressStore(vocab, map[string]models.WordProgress{
		"word00": {Word: "word00", Box: 1, LastReviewedSession: 3}, // interval 1, due at 4
		"word01": {Word: "word01", Box: 3, LastReviewedSession: 3}, // interval 4, due at 7
		"word02": {Word: "word02", Box: 0},                         // new, never due
	})

	due := planner.DueWords(vocab, store, 4)
	if len(due) != 1 || due[0].English != "word00" {
		t.Fatalf("DueWords at session 4 = %v, want [word00]", due)
	}

	due = planner.DueWords(vocab, store, 7)
	if len(due) != 2 {
		t.Fatalf("DueWords at session 7 = %v, want both reviewed words", due)
	}
	for _, w := range due {
		if store.Get(w.English).Box == 0 {
			t.Errorf("due word %q has box 0", w.English)
		}
	}
}

func TestDueWords_UsesPersonalizedInterval(t *testing.T) {
	planner, model := newTestPlanner(1)
	vocab := makeVocab(1)

	store := spaced_repetition.NewProgressStore(vocab, map[string]models.WordProgress{
		"word00": {Word: "word00", Box: 3, LastReviewedSession: 0},
	})

	// Struggling history shrinks box 3 from 4 sessions to 2
	now := time.Now()
	for i := 0; i < 3; i++ {
		model.RecordOutcome("word00", false, 1.0, now)
	}

	if due := planner.DueWords(vocab, store, 2); len(due) != 1 {
		t.Errorf("DueWords at session 2 = %v, want word00 due early", due)
	}
}

func TestPlanSession_Revision(t *testing.T) {
	planner, _ := newTestPlanner(1)
	vocab := makeVocab(6)

	store := spaced_repetition.NewProgressStore(vocab, map[string]models.WordProgress{
		"word00": {Word: "word00", Box: 1, Mastery: 5, Attempts: 6, Correct: 5, LastReviewedSession: 1},
		"word01": {Word: "word01", Box: 1, Mastery: 1, Attempts: 3, Correct: 1, LastReviewedSession: 2},
		"word02": {Word: "word02", Box: 1, Mastery: 1, Attempts: 3, Correct: 1, LastReviewedSession: 1},
		"word03": {Word: "word03", Box: 1, Mastery: 3, Attempts: 4, Correct: 2, LastReviewedSession: 1},
	})

	plan := planner.PlanSession(vocab, store, ModeRevision, 10, time.Now())

	want := []string{"word02", "word01", "word03", "word00"}
	if len(plan.Words) != len(want) {
		t.Fatalf("revision plan has %d words, want %d", len(plan.Words), len(want))
	}
	for i, w := range plan.Words {
		if w.English != want[i] {
			t.Errorf("plan.Words[%d] = %q, want %q (weakest, least recent first)", i, w.English, want[i])
		}
	}
	if len(plan.Introduced) != 0 {
		t.Errorf("revision session introduced %v, want none", plan.Introduced)
	}
}

func TestPlanSession_RevisionNeverExceedsDue(t *testing.T) {
	planner, _ := newTestPlanner(7)
	vocab := makeVocab(30)

	persisted := map[string]models.WordProgress{
		"word00": {Word: "word00", Box: 1, Mastery: 2, LastReviewedSession: 1},
		"word01": {Word: "word01", Box: 1, Mastery: 4, LastReviewedSession: 1},
	}
	store := spaced_repetition.NewProgressStore(vocab, persisted)

	plan := planner.PlanSession(vocab, store, ModeRevision, 10, time.Now())
	if len(plan.Words) != 2 {
		t.Fatalf("revision plan has %d words, want only the 2 due", len(plan.Words))
	}
	for _, w := range plan.Words {
		if store.Get(w.English).Box == 0 {
			t.Errorf("revision plan contains unreviewed word %q", w.English)
		}
	}
}

func TestPlanSession_RevisionTruncatedToPredictedSize(t *testing.T) {
	planner, _ := newTestPlanner(7)
	vocab := makeVocab(40)

	persisted := make(map[string]models.WordProgress, len(vocab))
	for i, w := range vocab {
		persisted[w.English] = models.WordProgress{
			Word: w.English, Box: 1, Mastery: i % 8, Attempts: 2, LastReviewedSession: 1,
		}
	}
	store := spaced_repetition.NewProgressStore(vocab, persisted)

	plan := planner.PlanSession(vocab, store, ModeRevision, 10, time.Now())
	if len(plan.Words) != plan.Prediction.SessionSize {
		t.Errorf("revision plan has %d words, want truncation to predicted size %d",
			len(plan.Words), plan.Prediction.SessionSize)
	}
}

func TestPlanSession_FreshVocabulary(t *testing.T) {
	planner, _ := newTestPlanner(42)
	vocab := makeVocab(10)
	store := spaced_repetition.NewProgressStore(vocab, nil)

	plan := planner.PlanSession(vocab, store, ModeNew, 0, time.Now())

	// Everything is new, so every selected word is introduced
	if len(plan.Words) == 0 {
		t.Fatal("fresh vocabulary produced an empty plan")
	}
	if len(plan.Words) > len(vocab) {
		t.Fatalf("plan has %d words from a vocabulary of %d", len(plan.Words), len(vocab))
	}
	if len(plan.Introduced) != len(plan.Words) {
		t.Errorf("Introduced = %d words, want all %d selected", len(plan.Introduced), len(plan.Words))
	}

	seen := make(map[string]bool)
	for _, w := range plan.Words {
		if seen[w.English] {
			t.Errorf("word %q selected twice", w.English)
		}
		seen[w.English] = true
	}
}

func TestPlanSession_MixedBucketsAndBackfill(t *testing.T) {
	planner, _ := newTestPlanner(3)
	vocab := makeVocab(40)

	persisted := make(map[string]models.WordProgress)
	// 10 struggling, 10 progressing, 10 strong; the last 10 stay new
	for i := 0; i < 10; i++ {
		persisted[vocab[i].English] = models.WordProgress{
			Word: vocab[i].English, Mastery: 2, Attempts: 4, Correct: 1, Box: 1, LastReviewedSession: 1,
		}
	}
	for i := 10; i < 20; i++ {
		persisted[vocab[i].English] = models.WordProgress{
			Word: vocab[i].English, Mastery: 5, Attempts: 6, Correct: 4, Box: 3, LastReviewedSession: 1,
		}
	}
	for i := 20; i < 30; i++ {
		persisted[vocab[i].English] = models.WordProgress{
			Word: vocab[i].English, Mastery: 8, Attempts: 10, Correct: 9, Box: 5, LastReviewedSession: 1,
		}
	}
	store := spaced_repetition.NewProgressStore(vocab, persisted)

	plan := planner.PlanSession(vocab, store, ModeNew, 5, time.Now())

	if plan.Prediction.DifficultyBias != models.BiasBalanced {
		t.Fatalf("bias = %q, want %q with default state", plan.Prediction.DifficultyBias, models.BiasBalanced)
	}
	if len(plan.Words) != plan.Prediction.SessionSize {
		t.Errorf("plan has %d words, want the full predicted %d with ample supply",
			len(plan.Words), plan.Prediction.SessionSize)
	}

	var nNew, nStruggling, nProgressing, nStrong int
	for _, w := range plan.Words {
		progress := store.Get(w.English)
		switch {
		case progress.Attempts == 0:
			nNew++
		case progress.Mastery <= 3:
			nStruggling++
		case progress.Mastery <= 6:
			nProgressing++
		default:
			nStrong++
		}
	}
	// Balanced shares of 15: 6 new, 4 struggling, 3 progressing, 0 strong,
	// then 2 backfilled from the non-strong leftovers
	if nStrong != 0 {
		t.Errorf("selected %d strong words, want 0 (0.05 share of 15 truncates to 0)", nStrong)
	}
	if nNew < 6 {
		t.Errorf("selected %d new words, want at least the 0.40 share of 6", nNew)
	}
	if nStruggling < 4 {
		t.Errorf("selected %d struggling words, want at least the 0.30 share of 4", nStruggling)
	}
	if nProgressing < 3 {
		t.Errorf("selected %d progressing words, want at least the 0.25 share of 3", nProgressing)
	}

	if len(plan.Introduced) != nNew {
		t.Errorf("Introduced = %d, want every new word in the plan (%d)", len(plan.Introduced), nNew)
	}
}

func TestPlanSession_DeterministicWithSeed(t *testing.T) {
	vocab := makeVocab(30)
	now := time.Now()

	run := func() []models.Word {
		planner, _ := newTestPlanner(99)
		store := spaced_repetition.NewProgressStore(vocab, nil)
		return planner.PlanSession(vocab, store, ModeNew, 0, now).Words
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("plans differ in size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("plans diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
