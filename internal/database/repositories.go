package database

import (
	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// Repositories bundles the four document repositories behind the
// session package's Persister interface.
type Repositories struct {
	progress *ProgressRepository
	model    *ModelRepository
	log      *SessionLogRepository
	counter  *SessionCounterRepository
}

// NewRepositories creates the repository bundle.
func NewRepositories() *Repositories {
	return &Repositories{
		progress: NewProgressRepository(),
		model:    NewModelRepository(),
		log:      NewSessionLogRepository(),
		counter:  NewSessionCounterRepository(),
	}
}

// LoadProgress reads all persisted word progress entries.
func (r *Repositories) LoadProgress() (map[string]models.WordProgress, error) {
	return r.progress.LoadAll()
}

// SaveProgress writes all word progress entries.
func (r *Repositories) SaveProgress(progress map[string]models.WordProgress) error {
	return r.progress.SaveAll(progress)
}

// LoadModel reads the personalization model document.
func (r *Repositories) LoadModel() (*models.PersonalizationState, error) {
	return r.model.Load()
}

// SaveModel writes the personalization model document.
func (r *Repositories) SaveModel(state *models.PersonalizationState) error {
	return r.model.Save(state)
}

// LoadSessionLog reads the session history.
func (r *Repositories) LoadSessionLog() (*models.SessionLog, error) {
	return r.log.Load()
}

// SaveSessionLog writes the session history.
func (r *Repositories) SaveSessionLog(sessionLog *models.SessionLog) error {
	return r.log.Save(sessionLog)
}

// LoadSessionCounter reads the session counter.
func (r *Repositories) LoadSessionCounter() (int, error) {
	return r.counter.Load()
}

// SaveSessionCounter writes the session counter.
func (r *Repositories) SaveSessionCounter(counter int) error {
	return r.counter.Save(counter)
}
