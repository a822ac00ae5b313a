// Package todo implements the todo list that timers can be linked to.
package todo

import (
	"strings"
	"time"

	"github.com/ayoisaiah/tl/internal/apperr"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/store"
	"github.com/ayoisaiah/tl/timer"
)

var errDescriptionRequired = &apperr.Error{
	Message: "a non-empty todo description is required",
}

// Add creates a new todo item.
func Add(db store.DB, description string, at time.Time) (*models.Todo, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errDescriptionRequired
	}

	td := &models.Todo{
		CreatedAt:   at,
		Description: description,
	}

	if err := db.CreateTodo(td); err != nil {
		return nil, err
	}

	return td, nil
}

// List returns all todos in creation order.
func List(db store.DB) ([]*models.Todo, error) {
	return db.Todos()
}

// Open returns the todos not yet marked done, in creation order.
func Open(db store.DB) ([]*models.Todo, error) {
	todos, err := db.Todos()
	if err != nil {
		return nil, err
	}

	open := todos[:0]

	for _, td := range todos {
		if !td.Done {
			open = append(open, td)
		}
	}

	return open, nil
}

// MarkDone marks a todo as completed. Completing an already completed
// todo is a no-op success.
func MarkDone(db store.DB, id uint64) error {
	td, err := db.Todo(id)
	if err != nil {
		return err
	}

	if td.Done {
		return nil
	}

	td.Done = true

	return db.UpdateTodo(td)
}

// Remove deletes a todo permanently. Log entries that reference the todo
// keep their link id.
func Remove(db store.DB, id uint64) error {
	return db.DeleteTodo(id)
}

// TotalActive returns the working time attributed to a todo: the summed
// active duration of the log entries linked to it, plus the live active
// time of any open timer still linked to it.
func TotalActive(
	db store.DB,
	id uint64,
	asOf time.Time,
) (time.Duration, error) {
	entries, err := db.Entries(time.Time{}, asOf)
	if err != nil {
		return 0, err
	}

	var total time.Duration

	for _, e := range entries {
		if e.TodoID == id {
			total += e.ActiveDuration
		}
	}

	records, err := db.Timers()
	if err != nil {
		return 0, err
	}

	for _, m := range records {
		if m.TodoID != id {
			continue
		}

		t, err := timer.FromDBModel(m)
		if err != nil {
			return 0, err
		}

		total += t.ActiveDuration(asOf)
	}

	return total, nil
}
