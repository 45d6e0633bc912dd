package cli

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/personalization"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/planner"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/quiz"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/session"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// App drives the interactive practice loop in the terminal.
type App struct {
	vocab   []models.Word
	state   *session.State
	store   *spaced_repetition.ProgressStore
	model   *personalization.Model
	planner *planner.Planner
	persist session.Persister
	rng     *rand.Rand
	in      *bufio.Scanner
	out     io.Writer
}

// New creates the CLI app.
func New(vocab []models.Word, state *session.State, store *spaced_repetition.ProgressStore,
	model *personalization.Model, pl *planner.Planner, persist session.Persister,
	rng *rand.Rand, in io.Reader, out io.Writer) *App {
	return &App{
		vocab:   vocab,
		state:   state,
		store:   store,
		model:   model,
		planner: pl,
		persist: persist,
		rng:     rng,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the welcome screen and loops sessions until the learner
// quits.
func (a *App) Run() error {
	fmt.Fprintln(a.out, "¡Bienvenido! Welcome to your English-Spanish vocabulary trainer!")

	for {
		due := a.planner.DueWords(a.vocab, a.store, a.state.Counter)
		a.printWelcome(len(due))

		mode, quit := a.chooseMode(len(due))
		if quit {
			a.printProgressSummary()
			fmt.Fprintln(a.out, "¡Hasta la vista!")
			return nil
		}
		a.runSession(mode)
	}
}

// printWelcome shows the session number, review backlog, and overall
// progress.
func (a *App) printWelcome(dueCount int) {
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(a.out, "Session #%d\n", a.state.Counter+1)
	if dueCount >= planner.MinRevisionWords {
		fmt.Fprintf(a.out, "You have %d words due for review!\n", dueCount)
	} else if dueCount > 0 {
		fmt.Fprintf(a.out, "You have %d words due for review (need %d+ for a revision session)\n",
			dueCount, planner.MinRevisionWords)
	} else {
		fmt.Fprintln(a.out, "No words currently due for review")
	}
	fmt.Fprintf(a.out, "Progress: %d/%d words learned, %d mastered\n",
		a.store.LearnedCount(), a.store.Len(), a.store.MasteredCount())
}

// chooseMode asks which kind of session to start. Revision is offered
// only when enough words are due.
func (a *App) chooseMode(dueCount int) (mode planner.Mode, quit bool) {
	if dueCount >= planner.MinRevisionWords {
		fmt.Fprintln(a.out, "\n1. Start revision session")
		fmt.Fprintln(a.out, "2. Start new learning session")
		fmt.Fprintln(a.out, "q. Quit")
		for {
			switch a.prompt("Your choice: ") {
			case "1":
				return planner.ModeRevision, false
			case "2":
				return planner.ModeNew, false
			case "q":
				return "", true
			}
			fmt.Fprintln(a.out, "Please enter 1, 2 or q.")
		}
	}

	fmt.Fprintln(a.out, "\n1. Start learning session")
	fmt.Fprintln(a.out, "q. Quit")
	for {
		switch a.prompt("Your choice: ") {
		case "1":
			return planner.ModeNew, false
		case "q":
			return "", true
		}
		fmt.Fprintln(a.out, "Please enter 1 or q.")
	}
}

// runSession plans, presents, and records one full session.
func (a *App) runSession(mode planner.Mode) {
	plan := a.planner.PlanSession(a.vocab, a.store, mode, a.state.Counter, time.Now())
	if len(plan.Words) == 0 {
		fmt.Fprintln(a.out, "\nNo words available for this session.")
		return
	}

	recorder := session.NewRecorder(a.state, a.store, a.model, plan)
	fmt.Fprintf(a.out, "\nStarting session #%d with %d words (%s bias)\n",
		recorder.Session(), len(plan.Words), plan.Prediction.DifficultyBias)

	for i, word := range plan.Words {
		fmt.Fprintf(a.out, "\n📚 Word %d of %d\n", i+1, len(plan.Words))

		// New words get a flashcard first; review words go straight
		// to the quiz
		if a.store.Get(word.English).Attempts == 0 {
			a.showFlashcard(word)
		}

		question := quiz.Build(word, a.vocab, a.rng)
		started := time.Now()
		choice := a.askQuestion(question)
		responseTime := time.Since(started).Seconds()

		correct := question.IsCorrect(choice)
		if correct {
			fmt.Fprintln(a.out, "¡Correcto! (Correct!)")
		} else {
			fmt.Fprintf(a.out, "Incorrecto. The correct answer is '%s'.\n", word.Spanish)
		}

		recorder.RecordAnswer(word.English, correct, responseTime, time.Now())
	}

	recorder.FinalizeSession(time.Now())
	a.printSummary(recorder.Summary())

	if err := a.state.Save(a.persist, a.store.Snapshot()); err != nil {
		log.Printf("Warning: %v, continuing with in-memory state", err)
	}
}

// showFlashcard presents a new word before it is quizzed.
func (a *App) showFlashcard(word models.Word) {
	fmt.Fprintf(a.out, "English: %s\n", titleCase(word.English))
	a.prompt("Try to recall the Spanish translation and press Enter...")
	fmt.Fprintf(a.out, "Spanish: %s\n", word.Spanish)
	a.prompt("Press Enter when ready for the quiz...")
}

// askQuestion displays the options and reads a valid 1-based choice.
func (a *App) askQuestion(q quiz.Question) int {
	fmt.Fprintf(a.out, "What is the Spanish translation of '%s'?\n", titleCase(q.Word.English))
	for i, opt := range q.Options {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, opt)
	}
	for {
		answer := a.prompt("Your answer (choose number): ")
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(q.Options) {
			return n
		}
		fmt.Fprintf(a.out, "Please enter a number between 1 and %d.\n", len(q.Options))
	}
}

// printSummary shows the session results and any words introduced.
func (a *App) printSummary(s session.Summary) {
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(a.out, "Session #%d complete!\n", a.state.Counter)
	if s.NewTotal > 0 {
		fmt.Fprintf(a.out, "New words: %d/%d (%.1f%%)\n",
			s.NewCorrect, s.NewTotal, percent(s.NewCorrect, s.NewTotal))
	}
	if s.ReviewTotal > 0 {
		fmt.Fprintf(a.out, "Review words: %d/%d (%.1f%%)\n",
			s.ReviewCorrect, s.ReviewTotal, percent(s.ReviewCorrect, s.ReviewTotal))
	}
	if len(s.Introduced) > 0 {
		fmt.Fprintln(a.out, "New words introduced:")
		for i, w := range s.Introduced {
			fmt.Fprintf(a.out, "  %d. %s → %s\n", i+1, titleCase(w.English), titleCase(w.Spanish))
		}
	}
}

// printProgressSummary shows overall progress and the best-learned
// words on the way out.
func (a *App) printProgressSummary() {
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(a.out, "Your progress: %d/%d words learned, %d mastered\n",
		a.store.LearnedCount(), a.store.Len(), a.store.MasteredCount())

	top := a.store.TopMastered(10)
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Best-learned words:")
	for i, entry := range top {
		fmt.Fprintf(a.out, "  %d. %s: Mastery=%d/10, Accuracy=%d/%d\n",
			i+1, titleCase(entry.Word), entry.Mastery, entry.Correct, entry.Attempts)
	}
}

// prompt prints the text and reads one trimmed line.
func (a *App) prompt(text string) string {
	fmt.Fprint(a.out, text)
	if !a.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(a.in.Text())
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

// titleCase capitalizes the first letter of a stored lowercase word
// for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
