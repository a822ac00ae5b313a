package store

import (
	"time"

	"github.com/ayoisaiah/tl/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// CreateTimer persists a new timer and assigns it a fresh id that is
	// never reused, even after the timer is deleted.
	CreateTimer(t *models.Timer) error
	// UpdateTimer overwrites a previously created timer.
	UpdateTimer(t *models.Timer) error
	// UpdateTimers overwrites several timers in a single transaction so
	// that a switch can never be observed half-applied.
	UpdateTimers(timers ...*models.Timer) error
	// DeleteTimer removes a timer.
	DeleteTimer(id uint64) error
	// Timer returns the timer stored under the given id.
	Timer(id uint64) (*models.Timer, error)
	// Timers returns all stored timers in id order.
	Timers() ([]*models.Timer, error)
	// StopTimer deletes a timer and appends the log entry that replaces
	// it in one transaction. The entry is assigned a fresh id.
	StopTimer(id uint64, entry *models.LogEntry) error

	// CreateEntry persists a completed log entry under a fresh id.
	CreateEntry(e *models.LogEntry) error
	// Entry returns the log entry stored under the given id.
	Entry(id uint64) (*models.LogEntry, error)
	// Entries returns the log entries whose start time falls within the
	// given bounds, inclusive, in id order.
	Entries(startTime, endTime time.Time) ([]*models.LogEntry, error)
	// DeleteEntry removes a log entry permanently.
	DeleteEntry(id uint64) error

	// CreateTodo persists a new todo under a fresh id.
	CreateTodo(td *models.Todo) error
	// UpdateTodo overwrites a previously created todo.
	UpdateTodo(td *models.Todo) error
	// Todo returns the todo stored under the given id.
	Todo(id uint64) (*models.Todo, error)
	// Todos returns all stored todos in id order.
	Todos() ([]*models.Todo, error)
	// DeleteTodo removes a todo.
	DeleteTodo(id uint64) error

	// Close ends the database connection and releases the file lock.
	Close() error
}
