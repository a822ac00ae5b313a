package timer

import (
	"strings"
	"time"

	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/store"
)

// Registry is the collection of all open timers. It enforces the rule
// that at most one timer is running at any instant and coordinates every
// state transition with the data store. Cross-process safety comes from
// the store's exclusive file lock, held for the lifetime of the client.
type Registry struct {
	db store.DB
}

// NewRegistry returns a registry backed by the given store.
func NewRegistry(db store.DB) *Registry {
	return &Registry{db: db}
}

// Start creates a new timer in the running state. It fails if another
// timer is already running: pausing the current timer first is always the
// caller's decision, never an implicit side effect.
func (r *Registry) Start(
	name, category string,
	todoID uint64,
	at time.Time,
) (*Timer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errNameRequired
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errCategoryRequired
	}

	running, err := r.Running()
	if err != nil {
		return nil, err
	}

	if running != nil {
		return nil, errAlreadyRunning.Fmt(running.ID, running.Name)
	}

	t := newTimer(name, category, todoID, at)

	m := t.ToDBModel()
	if err := r.db.CreateTimer(m); err != nil {
		return nil, err
	}

	t.ID = m.ID

	return t, nil
}

// Pause suspends a running timer and opens a break on it.
func (r *Registry) Pause(id uint64, at time.Time) (*Timer, error) {
	t, err := r.Timer(id)
	if err != nil {
		return nil, err
	}

	if err := t.pause(at); err != nil {
		return nil, err
	}

	if err := r.db.UpdateTimer(t.ToDBModel()); err != nil {
		return nil, err
	}

	return t, nil
}

// Resume transitions a paused timer back to running, closing its open
// break. It fails if a different timer is currently running.
func (r *Registry) Resume(id uint64, at time.Time) (*Timer, error) {
	t, err := r.Timer(id)
	if err != nil {
		return nil, err
	}

	running, err := r.Running()
	if err != nil {
		return nil, err
	}

	if running != nil && running.ID != id {
		return nil, errAlreadyRunning.Fmt(running.ID, running.Name)
	}

	if err := t.resume(at); err != nil {
		return nil, err
	}

	if err := r.db.UpdateTimer(t.ToDBModel()); err != nil {
		return nil, err
	}

	return t, nil
}

// Switch pauses the running timer, if any, and resumes the target timer,
// persisting both records in one transaction. Switching to the timer that
// is already running is a no-op success.
func (r *Registry) Switch(id uint64, at time.Time) (*Timer, error) {
	target, err := r.Timer(id)
	if err != nil {
		return nil, err
	}

	if target.Running() {
		return target, nil
	}

	running, err := r.Running()
	if err != nil {
		return nil, err
	}

	updated := make([]*models.Timer, 0, 2)

	if running != nil {
		if err := running.pause(at); err != nil {
			return nil, err
		}

		updated = append(updated, running.ToDBModel())
	}

	if err := target.resume(at); err != nil {
		return nil, err
	}

	updated = append(updated, target.ToDBModel())

	if err := r.db.UpdateTimers(updated...); err != nil {
		return nil, err
	}

	return target, nil
}

// Stop finalizes a timer at the given time: an open break is closed at
// the stop timestamp, durations are computed, and the timer is replaced
// by a log entry in one atomic transaction. The returned entry carries
// the id assigned by the store.
func (r *Registry) Stop(id uint64, at time.Time) (*models.LogEntry, error) {
	t, err := r.Timer(id)
	if err != nil {
		return nil, err
	}

	entry, err := t.stopEntry(at)
	if err != nil {
		return nil, err
	}

	if err := r.db.StopTimer(id, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Timer retrieves a single timer by id.
func (r *Registry) Timer(id uint64) (*Timer, error) {
	m, err := r.db.Timer(id)
	if err != nil {
		return nil, err
	}

	return FromDBModel(m)
}

// Timers returns all open timers in creation order.
func (r *Registry) Timers() ([]*Timer, error) {
	records, err := r.db.Timers()
	if err != nil {
		return nil, err
	}

	timers := make([]*Timer, len(records))

	for i, m := range records {
		t, err := FromDBModel(m)
		if err != nil {
			return nil, err
		}

		timers[i] = t
	}

	return timers, nil
}

// Running returns the running timer, or nil when every timer is paused.
func (r *Registry) Running() (*Timer, error) {
	timers, err := r.Timers()
	if err != nil {
		return nil, err
	}

	for _, t := range timers {
		if t.Running() {
			return t, nil
		}
	}

	return nil, nil
}

// Paused returns all paused timers in creation order.
func (r *Registry) Paused() ([]*Timer, error) {
	timers, err := r.Timers()
	if err != nil {
		return nil, err
	}

	paused := timers[:0]

	for _, t := range timers {
		if !t.Running() {
			paused = append(paused, t)
		}
	}

	return paused, nil
}
