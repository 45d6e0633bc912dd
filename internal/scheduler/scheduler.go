package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// StaleSessionHours is how long without a session a reminder fires
// even when no words are due.
const StaleSessionHours = 48

// Notifier interface for delivering review reminders
type Notifier interface {
	SendReminder(dueCount int, hoursSinceLast float64) error
}

// StatusSource reports the learner's current review backlog.
type StatusSource interface {
	DueCount() int
	HoursSinceLastSession(now time.Time) float64
}

// Scheduler runs the periodic reminder check for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	source    StatusSource
	startHour int
	endHour   int
}

// New creates a new scheduler instance
func New(notifier Notifier, source StatusSource, startHour, endHour int) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
		source:    source,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check whether a reminder should go out
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends a reminder when words are due for review
// or the learner has not practiced for too long.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, s.startHour, s.endHour)
		return
	}

	dueCount := s.source.DueCount()
	hoursSinceLast := s.source.HoursSinceLastSession(time.Now())

	if dueCount == 0 && hoursSinceLast < StaleSessionHours {
		return
	}

	if err := s.notifier.SendReminder(dueCount, hoursSinceLast); err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
}

// RunManualCheck forces an immediate reminder check, ignoring the
// notification window.
func (s *Scheduler) RunManualCheck() error {
	dueCount := s.source.DueCount()
	hoursSinceLast := s.source.HoursSinceLastSession(time.Now())
	if dueCount == 0 && hoursSinceLast < StaleSessionHours {
		return nil
	}
	return s.notifier.SendReminder(dueCount, hoursSinceLast)
}
