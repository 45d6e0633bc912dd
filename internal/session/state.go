package session

import (
	"fmt"
	"log"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Persister reads and writes the four persisted state documents. The
// database package provides the production implementation.
type Persister interface {
	LoadProgress() (map[string]models.WordProgress, error)
	SaveProgress(map[string]models.WordProgress) error
	LoadModel() (*models.PersonalizationState, error)
	SaveModel(*models.PersonalizationState) error
	LoadSessionLog() (*models.SessionLog, error)
	SaveSessionLog(*models.SessionLog) error
	LoadSessionCounter() (int, error)
	SaveSessionCounter(int) error
}

// State owns all mutable learning state for one learner: the progress
// store, the personalization model state, the session log, and the
// session counter. It is constructed explicitly and passed by
// reference; there are no package-level instances.
type State struct {
	Model   *models.PersonalizationState
	Log     *models.SessionLog
	Counter int

	persisted map[string]models.WordProgress
}

// Load reads all persisted documents. Unreadable or corrupt documents
// are not fatal: the affected state falls back to defaults so corrupt
// local files never block usage.
func Load(p Persister) *State {
	state := &State{}

	progress, err := p.LoadProgress()
	if err != nil {
		log.Printf("Warning: failed to load progress, starting fresh: %v", err)
		progress = make(map[string]models.WordProgress)
	}
	state.persisted = progress

	model, err := p.LoadModel()
	if err != nil || model == nil {
		if err != nil {
			log.Printf("Warning: failed to load personalization model, using defaults: %v", err)
		}
		model = models.DefaultPersonalizationState()
	}
	state.Model = model

	sessionLog, err := p.LoadSessionLog()
	if err != nil || sessionLog == nil {
		if err != nil {
			log.Printf("Warning: failed to load session log, starting empty: %v", err)
		}
		sessionLog = &models.SessionLog{}
	}
	state.Log = sessionLog

	counter, err := p.LoadSessionCounter()
	if err != nil {
		log.Printf("Warning: failed to load session counter, resetting to 0: %v", err)
		counter = 0
	}
	state.Counter = counter

	return state
}

// PersistedProgress returns the progress entries read at load time,
// for merging into a progress store.
func (s *State) PersistedProgress() map[string]models.WordProgress {
	return s.persisted
}

// Save writes all documents. Any failure is reported to the caller as
// a single error; the in-memory state stays valid either way.
func (s *State) Save(p Persister, progress map[string]models.WordProgress) error {
	if err := p.SaveProgress(progress); err != nil {
		return fmt.Errorf("failed to save progress: %v", err)
	}
	if err := p.SaveModel(s.Model); err != nil {
		return fmt.Errorf("failed to save personalization model: %v", err)
	}
	if err := p.SaveSessionLog(s.Log); err != nil {
		return fmt.Errorf("failed to save session log: %v", err)
	}
	if err := p.SaveSessionCounter(s.Counter); err != nil {
		return fmt.Errorf("failed to save session counter: %v", err)
	}
	return nil
}
