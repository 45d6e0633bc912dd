package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saks85/AI-agent-for-vocab-practice/internal/cli"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/config"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/database"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/notify"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/personalization"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/planner"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/scheduler"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/session"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/spaced_repetition"
	"github.com/Saks85/AI-agent-for-vocab-practice/internal/vocab"
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

func main() {
	remind := flag.Bool("remind", false, "run the review reminder daemon instead of a practice session")
	flag.Parse()

	cfg := config.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Missing or empty vocabulary is fatal: no session can start
	words, err := vocab.Load(cfg.VocabFile)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}
	log.Printf("Loaded %d vocabulary pairs", len(words))

	repos := database.NewRepositories()
	state := session.Load(repos)
	store := spaced_repetition.NewProgressStore(words, state.PersistedProgress())
	leitner := spaced_repetition.NewLeitner()
	model := personalization.New(state.Model, state.Log, leitner)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pl := planner.New(leitner, model, rng)

	if *remind {
		runReminderDaemon(cfg, words, state, store, pl)
		return
	}

	app := cli.New(words, state, store, model, pl, repos, rng, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		log.Fatalf("Session error: %v", err)
	}
}

// runReminderDaemon starts the hourly reminder check and blocks until
// interrupted.
func runReminderDaemon(cfg *config.Config, words []models.Word, state *session.State,
	store *spaced_repetition.ProgressStore, pl *planner.Planner) {
	var notifier scheduler.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		notifier = tg
		log.Println("Reminders will be sent via Telegram")
	} else {
		notifier = notify.NewConsole(os.Stdout)
	}

	source := &reviewStatus{words: words, state: state, store: store, planner: pl}
	s := scheduler.New(notifier, source, cfg.NotificationStartHour, cfg.NotificationEndHour)
	s.Start()
	defer s.Stop()

	log.Println("Reminder daemon started. Press Ctrl+C to stop.")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Reminder daemon stopped")
}

// reviewStatus adapts the planner and session state to the scheduler's
// StatusSource interface.
type reviewStatus struct {
	words   []models.Word
	state   *session.State
	store   *spaced_repetition.ProgressStore
	planner *planner.Planner
}

func (r *reviewStatus) DueCount() int {
	return len(r.planner.DueWords(r.words, r.store, r.state.Counter))
}

func (r *reviewStatus) HoursSinceLastSession(now time.Time) float64 {
	last := r.state.Log.Last()
	if last == nil {
		// A learner who never practiced should still get nudged
		return scheduler.StaleSessionHours
	}
	return now.Sub(last.Timestamp).Hours()
}
