package quiz

import (
	"math/rand"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Option limits for a multiple-choice question.
const (
	maxOptions         = 4
	maxDistractorDraws = 20
)

// Question is a single multiple-choice question: the word being
// tested, the shuffled answer options, and where the correct one is.
type Question struct {
	Word         models.Word
	Options      []string
	CorrectIndex int
}

// Build creates a multiple-choice question for a word. Distractors are
// drawn randomly from the rest of the vocabulary's translations with a
// bounded number of draws; when the pool is too small the question
// proceeds with however many unique options were found, at minimum the
// correct answer alone.
func Build(word models.Word, vocab []models.Word, rng *rand.Rand) Question {
	options := []string{word.Spanish}

	draws := 0
	for len(options) < maxOptions && draws < maxDistractorDraws {
		candidate := vocab[rng.Intn(len(vocab))].Spanish
		if !contains(options, candidate) {
			options = append(options, candidate)
		}
		draws++
	}

	// Shuffle while tracking where the correct answer lands
	correctIndex := 0
	rng.Shuffle(len(options), func(i, j int) {
		if i == correctIndex {
			correctIndex = j
		} else if j == correctIndex {
			correctIndex = i
		}
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Word:         word,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// IsCorrect reports whether the 1-based choice matches the answer.
func (q Question) IsCorrect(choice int) bool {
	return choice-1 == q.CorrectIndex
}

func contains(options []string, candidate string) bool {
	for _, opt := range options {
		if opt == candidate {
			return true
		}
	}
	return false
}
