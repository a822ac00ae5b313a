package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/internal/timeutil"
	"github.com/ayoisaiah/tl/internal/ui"
	"github.com/ayoisaiah/tl/timer"
)

const (
	noTimersMsg = "No open timers"
)

// printTimersTable prints a table of open timers to the command-line.
func printTimersTable(
	w io.Writer,
	cfg *config.Config,
	timers []*timer.Timer,
	asOf time.Time,
) {
	tableBody := make([][]string, len(timers))

	for i := range timers {
		t := timers[i]

		stateText := ui.Green(string(models.StateRunning))
		if !t.Running() {
			stateText = ui.Red(string(models.StatePaused))
		}

		todoText := ""
		if t.TodoID != 0 {
			todoText = fmt.Sprintf("#%d", t.TodoID)
		}

		row := []string{
			fmt.Sprintf("%d", t.ID),
			ui.Truncate(t.Name, 40),
			t.Category,
			stateText,
			t.StartTime.Local().Format(dateTimeFormat(cfg)),
			timeutil.FormatDuration(t.ActiveDuration(asOf)),
			timeutil.FormatDuration(t.BreakDuration(asOf)),
			todoText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"ID", "NAME", "CATEGORY", "STATE", "STARTED", "ACTIVE", "BREAKS", "TODO"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listTimers prints out a table of open timers with their active and
// break durations as of the current time.
func listTimers(cfg *config.Config, timers []*timer.Timer, asOf time.Time) error {
	if len(timers) == 0 {
		pterm.Info.Println(noTimersMsg)
		return nil
	}

	printTimersTable(os.Stdout, cfg, timers, asOf)

	return nil
}
