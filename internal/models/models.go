package models

import "time"

// TimerState is the lifecycle state of a persisted timer. There is no
// stopped state: stopping removes the timer and produces a LogEntry.
type TimerState string

const (
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
)

// Timer is a tracked activity that has not yet been stopped.
type Timer struct {
	// StartTime is when the timer was first created and never changes
	// afterwards.
	StartTime time.Time `json:"start_time"`
	// SegmentStart is the most recent transition into the running state.
	SegmentStart time.Time  `json:"segment_start"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	State        TimerState `json:"state"`
	// Breaks is the timer's pause history in its versioned binary
	// encoding. The timer package owns the format.
	Breaks []byte `json:"breaks"`
	ID     uint64 `json:"id"`
	// TodoID links the timer to a todo item. Zero means unlinked.
	TodoID uint64 `json:"todo_id,omitempty"`
}

// LogEntry is the immutable record produced when a timer is stopped.
type LogEntry struct {
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	ActiveDuration time.Duration `json:"active_duration"`
	BreakDuration  time.Duration `json:"break_duration"`
	// Breaks preserves the stopped timer's pause history verbatim for
	// later reconstruction. Duration math never reads it.
	Breaks []byte `json:"breaks"`
	ID     uint64 `json:"id"`
	TodoID uint64 `json:"todo_id,omitempty"`
}

// Todo is a single todo list item.
type Todo struct {
	CreatedAt   time.Time `json:"created_at"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	ID          uint64    `json:"id"`
}
