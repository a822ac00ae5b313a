// Package timer implements the timer lifecycle engine: named activities
// that accrue working time, pause and resume at will, and reconstruct on
// stop exactly how much of the elapsed span was active work versus break
// time.
package timer

import (
	"time"

	"github.com/ayoisaiah/tl/internal/models"
)

// Timer is one tracked activity. It owns its break history and is
// persisted across process runs until it is stopped, at which point it is
// converted into a log entry and removed.
type Timer struct {
	StartTime    time.Time
	SegmentStart time.Time
	Breaks       *BreakTracker
	Name         string
	Category     string
	State        models.TimerState
	ID           uint64
	TodoID       uint64
}

func newTimer(name, category string, todoID uint64, at time.Time) *Timer {
	return &Timer{
		StartTime:    at,
		SegmentStart: at,
		Breaks:       &BreakTracker{},
		Name:         name,
		Category:     category,
		State:        models.StateRunning,
		TodoID:       todoID,
	}
}

// Running reports whether the timer is actively accruing time.
func (t *Timer) Running() bool {
	return t.State == models.StateRunning
}

// BreakDuration returns the timer's total break time as of the given
// instant, counting an open break up to asOf.
func (t *Timer) BreakDuration(asOf time.Time) time.Duration {
	return t.Breaks.TotalBreakDuration(asOf)
}

// ActiveDuration returns the elapsed wall-clock time minus break time as
// of the given instant, clamped to zero to defend against clock anomalies.
func (t *Timer) ActiveDuration(asOf time.Time) time.Duration {
	active := asOf.Sub(t.StartTime) - t.BreakDuration(asOf)
	if active < 0 {
		return 0
	}

	return active
}

func (t *Timer) pause(at time.Time) error {
	if t.State != models.StateRunning {
		return errInvalidState.Fmt("pause", t.ID, t.State)
	}

	if err := t.Breaks.OpenBreak(at); err != nil {
		return err
	}

	t.State = models.StatePaused

	return nil
}

func (t *Timer) resume(at time.Time) error {
	if t.State != models.StatePaused {
		return errInvalidState.Fmt("resume", t.ID, t.State)
	}

	if err := t.Breaks.CloseBreak(at); err != nil {
		return err
	}

	t.State = models.StateRunning
	t.SegmentStart = at

	return nil
}

// stopEntry finalizes the timer at the given time and builds the log entry
// recording it. A break still open at stop time is closed at the stop
// timestamp before durations are computed.
func (t *Timer) stopEntry(at time.Time) (*models.LogEntry, error) {
	if t.Breaks.HasOpenBreak() {
		if err := t.Breaks.CloseBreak(at); err != nil {
			return nil, err
		}
	}

	return &models.LogEntry{
		StartTime:      t.StartTime,
		EndTime:        at,
		Name:           t.Name,
		Category:       t.Category,
		ActiveDuration: t.ActiveDuration(at),
		BreakDuration:  t.BreakDuration(at),
		Breaks:         t.Breaks.Encode(),
		TodoID:         t.TodoID,
	}, nil
}

// ToDBModel converts the timer to its persisted representation.
func (t *Timer) ToDBModel() *models.Timer {
	return &models.Timer{
		ID:           t.ID,
		Name:         t.Name,
		Category:     t.Category,
		State:        t.State,
		StartTime:    t.StartTime,
		SegmentStart: t.SegmentStart,
		Breaks:       t.Breaks.Encode(),
		TodoID:       t.TodoID,
	}
}

// FromDBModel reconstructs a timer from its persisted representation.
func FromDBModel(m *models.Timer) (*Timer, error) {
	breaks, err := DecodeBreaks(m.Breaks)
	if err != nil {
		return nil, err
	}

	return &Timer{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		State:        m.State,
		StartTime:    m.StartTime,
		SegmentStart: m.SegmentStart,
		Breaks:       breaks,
		TodoID:       m.TodoID,
	}, nil
}
