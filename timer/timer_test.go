package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimerActiveDuration(t *testing.T) {
	tm := newTimer("deep work", "writing", 0, ts(0))

	if !tm.Running() {
		t.Fatal("a new timer should be running")
	}

	if got := tm.ActiveDuration(ts(50 * time.Minute)); got != 50*time.Minute {
		t.Errorf("expected 50m active with no breaks, got %s", got)
	}

	// Clock anomalies clamp to zero instead of going negative.
	if got := tm.ActiveDuration(ts(-time.Minute)); got != 0 {
		t.Errorf("expected 0 active before the start time, got %s", got)
	}

	if err := tm.pause(ts(20 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	if tm.Running() {
		t.Fatal("a paused timer should not be running")
	}

	err := tm.pause(ts(21 * time.Minute))
	if !errors.Is(err, errInvalidState) {
		t.Fatalf("expected errInvalidState on double pause, got: %v", err)
	}

	if err := tm.resume(ts(30 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	if !tm.SegmentStart.Equal(ts(30 * time.Minute)) {
		t.Errorf("resume should move the segment start, got %s", tm.SegmentStart)
	}

	err = tm.resume(ts(31 * time.Minute))
	if !errors.Is(err, errInvalidState) {
		t.Fatalf("expected errInvalidState on double resume, got: %v", err)
	}

	if got := tm.ActiveDuration(ts(50 * time.Minute)); got != 40*time.Minute {
		t.Errorf("expected 40m active after a 10m break, got %s", got)
	}

	if got := tm.BreakDuration(ts(50 * time.Minute)); got != 10*time.Minute {
		t.Errorf("expected 10m of breaks, got %s", got)
	}
}

func TestTimerPausedDurationFrozen(t *testing.T) {
	tm := newTimer("api", "work", 0, ts(0))

	if err := tm.pause(ts(15 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	// While paused, active time stays frozen no matter how late asOf is.
	for _, offset := range []time.Duration{16 * time.Minute, time.Hour, 24 * time.Hour} {
		if got := tm.ActiveDuration(ts(offset)); got != 15*time.Minute {
			t.Errorf("active duration at +%s: expected 15m, got %s", offset, got)
		}
	}
}

func TestTimerStopEntry(t *testing.T) {
	tm := newTimer("review", "work", 7, ts(0))

	if err := tm.pause(ts(20 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	// Stopping while paused closes the open break at the stop timestamp.
	entry, err := tm.stopEntry(ts(45 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	if !entry.EndTime.Equal(ts(45 * time.Minute)) {
		t.Errorf("expected end time at +45m, got %s", entry.EndTime)
	}

	if entry.ActiveDuration != 20*time.Minute {
		t.Errorf("expected 20m active, got %s", entry.ActiveDuration)
	}

	if entry.BreakDuration != 25*time.Minute {
		t.Errorf("expected 25m of breaks, got %s", entry.BreakDuration)
	}

	if entry.TodoID != 7 {
		t.Errorf("expected the todo link to carry over, got %d", entry.TodoID)
	}

	if entry.ActiveDuration+entry.BreakDuration != 45*time.Minute {
		t.Error("active and break time should cover the whole span")
	}

	decoded, err := DecodeBreaks(entry.Breaks)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.HasOpenBreak() {
		t.Error("the recorded break history should have no open break")
	}
}

func TestTimerDBModelRoundTrip(t *testing.T) {
	tm := newTimer("refactor", "work", 3, ts(0))
	tm.ID = 12

	if err := tm.pause(ts(10 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	if err := tm.resume(ts(12 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	if err := tm.pause(ts(30 * time.Minute)); err != nil {
		t.Fatal(err)
	}

	restored, err := FromDBModel(tm.ToDBModel())
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(tm.ToDBModel(), restored.ToDBModel()); diff != "" {
		t.Errorf("persisted form changed in round trip (-want +got):\n%s", diff)
	}

	asOf := ts(40 * time.Minute)
	if restored.ActiveDuration(asOf) != tm.ActiveDuration(asOf) {
		t.Error("restored timer computes a different active duration")
	}
}
