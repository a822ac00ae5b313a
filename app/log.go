package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/internal/timeutil"
	"github.com/ayoisaiah/tl/internal/ui"
	"github.com/ayoisaiah/tl/store"
	"github.com/ayoisaiah/tl/worklog"
)

const (
	noEntriesMsg = "No log entries found for the specified time range"
)

// printEntriesTable prints a log entry table to the command-line.
func printEntriesTable(
	w io.Writer,
	cfg *config.Config,
	entries []*models.LogEntry,
) {
	tableBody := make([][]string, len(entries))

	for i := range entries {
		e := entries[i]

		todoText := ""
		if e.TodoID != 0 {
			todoText = fmt.Sprintf("#%d", e.TodoID)
		}

		row := []string{
			fmt.Sprintf("%d", e.ID),
			ui.Truncate(e.Name, 40),
			e.Category,
			e.StartTime.Local().Format(dateTimeFormat(cfg)),
			timeutil.FormatDuration(e.ActiveDuration),
			timeutil.FormatDuration(e.BreakDuration),
			todoText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"ID", "NAME", "CATEGORY", "DATE", "ACTIVE", "BREAKS", "TODO"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printCategoryTotals prints the per-category breakdown of active time.
func printCategoryTotals(w io.Writer, totals []worklog.CategoryTotal) {
	tableBody := make([][]string, len(totals))

	for i, v := range totals {
		tableBody[i] = []string{
			v.Category,
			timeutil.FormatDuration(v.Active),
		}
	}

	tableBody = append([][]string{
		{"CATEGORY", "ACTIVE"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listEntries prints out a table of log entries followed by the overall
// totals and a per-category breakdown.
func listEntries(cfg *config.Config, entries []*models.LogEntry) error {
	if len(entries) == 0 {
		pterm.Info.Println(noEntriesMsg)
		return nil
	}

	printEntriesTable(os.Stdout, cfg, entries)

	pterm.Printfln(
		"%s: %s active, %s on breaks across %d entries",
		ui.Highlight("TOTAL"),
		timeutil.FormatDuration(worklog.TotalActive(entries)),
		timeutil.FormatDuration(worklog.TotalBreaks(entries)),
		len(entries),
	)

	totals := worklog.CategoryTotals(entries)
	if len(totals) > 1 {
		pterm.Printfln("\n%s", ui.Magenta("Category breakdown"))
		printCategoryTotals(os.Stdout, totals)
	}

	return nil
}

// delEntry deletes the given log entry. It requests for confirmation
// before proceeding with the operation.
func delEntry(cfg *config.Config, db store.DB, entry *models.LogEntry) error {
	printEntriesTable(os.Stdout, cfg, []*models.LogEntry{entry})

	warning := pterm.Warning.Sprint(
		"The above entry will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(os.Stdout, warning)

	reader := bufio.NewReader(os.Stdin)

	_, _ = reader.ReadString('\n')

	if err := worklog.Delete(db, entry.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted log entry #%d", entry.ID)

	return nil
}
