package worklog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/store"
)

var baseTime = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

func ts(offset time.Duration) time.Time {
	return baseTime.Add(offset)
}

func newTestDB(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "tl.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func seedEntries(t *testing.T, db *store.Client) {
	t.Helper()

	entries := []*models.LogEntry{
		{
			StartTime:      ts(2 * time.Hour),
			EndTime:        ts(3 * time.Hour),
			Name:           "api docs",
			Category:       "work",
			ActiveDuration: 50 * time.Minute,
			BreakDuration:  10 * time.Minute,
		},
		{
			StartTime:      ts(0),
			EndTime:        ts(time.Hour),
			Name:           "standup",
			Category:       "work",
			ActiveDuration: 30 * time.Minute,
			BreakDuration:  30 * time.Minute,
		},
		{
			StartTime:      ts(26 * time.Hour),
			EndTime:        ts(27 * time.Hour),
			Name:           "reading",
			Category:       "personal",
			ActiveDuration: time.Hour,
		},
	}

	for _, e := range entries {
		if err := db.CreateEntry(e); err != nil {
			t.Fatal(err)
		}
	}
}

func entryNames(entries []*models.LogEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	return names
}

func TestList(t *testing.T) {
	db := newTestDB(t)

	seedEntries(t, db)

	cases := []struct {
		Name string
		Opts *config.FilterConfig
		Want []string
	}{
		{
			Name: "all entries in start time order",
			Opts: &config.FilterConfig{
				EndTime: ts(48 * time.Hour),
			},
			Want: []string{"standup", "api docs", "reading"},
		},
		{
			Name: "window excludes later entries",
			Opts: &config.FilterConfig{
				StartTime: ts(0),
				EndTime:   ts(3 * time.Hour),
			},
			Want: []string{"standup", "api docs"},
		},
		{
			Name: "category filter",
			Opts: &config.FilterConfig{
				EndTime:  ts(48 * time.Hour),
				Category: "personal",
			},
			Want: []string{"reading"},
		},
		{
			Name: "empty window",
			Opts: &config.FilterConfig{
				StartTime: ts(72 * time.Hour),
				EndTime:   ts(96 * time.Hour),
			},
			Want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			entries, err := List(db, tc.Opts)
			if err != nil {
				t.Fatal(err)
			}

			got := entryNames(entries)
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("unexpected entries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListOrderStableForEqualStartTimes(t *testing.T) {
	db := newTestDB(t)

	for _, name := range []string{"first", "second", "third"} {
		e := &models.LogEntry{
			StartTime: ts(0),
			EndTime:   ts(time.Hour),
			Name:      name,
			Category:  "work",
		}

		if err := db.CreateEntry(e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := List(db, &config.FilterConfig{EndTime: ts(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	// Equal start times fall back to id order.
	want := []string{"first", "second", "third"}
	if diff := cmp.Diff(want, entryNames(entries)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestTotals(t *testing.T) {
	db := newTestDB(t)

	seedEntries(t, db)

	entries, err := List(db, &config.FilterConfig{EndTime: ts(48 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	if got := TotalActive(entries); got != 2*time.Hour+20*time.Minute {
		t.Errorf("expected 2h20m active, got %s", got)
	}

	if got := TotalBreaks(entries); got != 40*time.Minute {
		t.Errorf("expected 40m of breaks, got %s", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	entries := []*models.LogEntry{
		{Category: "cat10", ActiveDuration: time.Hour},
		{Category: "cat2", ActiveDuration: 30 * time.Minute},
		{Category: "cat2", ActiveDuration: 15 * time.Minute},
	}

	want := []CategoryTotal{
		{Category: "cat2", Active: 45 * time.Minute},
		{Category: "cat10", Active: time.Hour},
	}

	got := CategoryTotals(entries)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected totals (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)

	seedEntries(t, db)

	entries, err := List(db, &config.FilterConfig{EndTime: ts(48 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	if err := Delete(db, entries[0].ID); err != nil {
		t.Fatal(err)
	}

	remaining, err := List(db, &config.FilterConfig{EndTime: ts(48 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	if len(remaining) != len(entries)-1 {
		t.Fatalf(
			"expected %d entries after delete, got %d",
			len(entries)-1,
			len(remaining),
		)
	}

	err = Delete(db, entries[0].ID)
	if !errors.Is(err, store.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got: %v", err)
	}
}
