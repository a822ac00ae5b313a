package store

import "github.com/ayoisaiah/tl/internal/apperr"

var (
	errDatabaseLocked = &apperr.Error{
		Message: "is tl already running? Only one instance can be active at a time",
	}

	errDatabase = &apperr.Error{
		Message: "database operation failed",
	}

	// ErrTimerNotFound is returned when no timer exists under the
	// requested id.
	ErrTimerNotFound = &apperr.Error{
		Message: "timer #%d does not exist",
	}

	// ErrEntryNotFound is returned when no log entry exists under the
	// requested id.
	ErrEntryNotFound = &apperr.Error{
		Message: "log entry #%d does not exist",
	}

	// ErrTodoNotFound is returned when no todo exists under the requested
	// id.
	ErrTodoNotFound = &apperr.Error{
		Message: "todo #%d does not exist",
	}
)
