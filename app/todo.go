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
	"github.com/ayoisaiah/tl/store"
	"github.com/ayoisaiah/tl/todo"
)

const (
	noTodosMsg = "No todos found"
)

// printTodosTable prints a todos table to the command-line.
func printTodosTable(
	w io.Writer,
	cfg *config.Config,
	todos []*models.Todo,
	logged map[uint64]time.Duration,
) {
	tableBody := make([][]string, len(todos))

	for i := range todos {
		td := todos[i]

		statusText := ui.Green("done")
		if !td.Done {
			statusText = ui.Cyan("open")
		}

		row := []string{
			fmt.Sprintf("%d", td.ID),
			statusText,
			ui.Truncate(td.Description, 60),
			td.CreatedAt.Local().Format(dateTimeFormat(cfg)),
			timeutil.FormatDuration(logged[td.ID]),
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"ID", "STATUS", "DESCRIPTION", "CREATED", "LOGGED"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listTodos prints out a table of todos with the total time logged
// against each one, including time on timers that are still open.
func listTodos(
	cfg *config.Config,
	db store.DB,
	todos []*models.Todo,
	asOf time.Time,
) error {
	if len(todos) == 0 {
		pterm.Info.Println(noTodosMsg)
		return nil
	}

	logged := make(map[uint64]time.Duration, len(todos))

	for _, td := range todos {
		total, err := todo.TotalActive(db, td.ID, asOf)
		if err != nil {
			return err
		}

		logged[td.ID] = total
	}

	printTodosTable(os.Stdout, cfg, todos, logged)

	return nil
}
