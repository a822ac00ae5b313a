// Package worklog maintains the durable log of completed timer sessions.
package worklog

import (
	"cmp"
	"slices"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/store"
)

// List returns the log entries whose start time falls within the filter
// window, ordered by start time with ties broken by id so that the
// ordering is total and stable across runs.
func List(db store.DB, opts *config.FilterConfig) ([]*models.LogEntry, error) {
	entries, err := db.Entries(opts.StartTime, opts.EndTime)
	if err != nil {
		return nil, err
	}

	if opts.Category != "" {
		filtered := entries[:0]

		for _, e := range entries {
			if e.Category == opts.Category {
				filtered = append(filtered, e)
			}
		}

		entries = filtered
	}

	slices.SortStableFunc(entries, func(a, b *models.LogEntry) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return entries, nil
}

// Append persists a completed entry. The store assigns its id.
func Append(db store.DB, e *models.LogEntry) error {
	return db.CreateEntry(e)
}

// Delete permanently removes a log entry by its persisted id.
func Delete(db store.DB, id uint64) error {
	return db.DeleteEntry(id)
}

// TotalActive sums the active duration over the given entries.
func TotalActive(entries []*models.LogEntry) time.Duration {
	var total time.Duration

	for _, e := range entries {
		total += e.ActiveDuration
	}

	return total
}

// TotalBreaks sums the break duration over the given entries.
func TotalBreaks(entries []*models.LogEntry) time.Duration {
	var total time.Duration

	for _, e := range entries {
		total += e.BreakDuration
	}

	return total
}

// CategoryTotal is the summed active time for one category.
type CategoryTotal struct {
	Category string
	Active   time.Duration
}

// CategoryTotals aggregates active time per category, ordered naturally
// by category name so that "cat2" sorts before "cat10".
func CategoryTotals(entries []*models.LogEntry) []CategoryTotal {
	totals := make(map[string]time.Duration)

	for _, e := range entries {
		totals[e.Category] += e.ActiveDuration
	}

	result := make([]CategoryTotal, 0, len(totals))

	for category, active := range totals {
		result = append(result, CategoryTotal{
			Category: category,
			Active:   active,
		})
	}

	slices.SortFunc(result, func(a, b CategoryTotal) int {
		switch {
		case natural.Less(a.Category, b.Category):
			return -1
		case natural.Less(b.Category, a.Category):
			return 1
		default:
			return 0
		}
	})

	return result
}
