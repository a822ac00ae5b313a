package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/internal/timeutil"
	"github.com/ayoisaiah/tl/internal/ui"
	"github.com/ayoisaiah/tl/timer"
)

// startOptions holds the user's responses to the start prompts.
type startOptions struct {
	Name     string
	Category string
	TodoID   uint64
}

// promptStartOptions collects the name, category, and optional todo link for
// a new timer. When one or more todos are still open, the timer may be linked
// to one of them, in which case the todo text becomes the timer name.
func promptStartOptions(
	cfg *config.Config,
	todos []*models.Todo,
) (startOptions, error) {
	opts := startOptions{
		Category: cfg.Settings.DefaultCategory,
	}

	if len(todos) > 0 {
		selected, err := promptTodoLink(todos)
		if err != nil {
			return opts, err
		}

		if selected != nil {
			opts.Name = selected.Description
			opts.TodoID = selected.ID
		}
	}

	var groups []*huh.Group

	if opts.Name == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("What are you working on?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("the timer name cannot be empty")
					}

					return nil
				}).
				Value(&opts.Name),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Category").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("the category cannot be empty")
				}

				return nil
			}).
			Value(&opts.Category),
	))

	err := huh.NewForm(groups...).Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	opts.Name = strings.TrimSpace(opts.Name)
	opts.Category = strings.TrimSpace(opts.Category)

	return opts, nil
}

// promptTodoLink asks whether the new timer should be linked to one of the
// open todos. It returns nil when the user picks none.
func promptTodoLink(todos []*models.Todo) (*models.Todo, error) {
	options := make([]huh.Option[uint64], 0, len(todos)+1)
	options = append(options, huh.NewOption("None", uint64(0)).Selected(true))

	for _, v := range todos {
		label := fmt.Sprintf("#%d %s", v.ID, ui.Truncate(v.Description, 60))
		options = append(options, huh.NewOption(label, v.ID))
	}

	var todoID uint64

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uint64]().
				Title("Link a todo?").
				Options(options...).
				Value(&todoID),
		),
	)

	err := form.Run()
	if err != nil {
		return nil, fmt.Errorf("form interaction failed: %w", err)
	}

	for _, v := range todos {
		if v.ID == todoID {
			return v, nil
		}
	}

	return nil, nil
}

// promptConfirm displays a yes/no confirmation and reports the choice.
func promptConfirm(title string) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirm),
		),
	)

	err := form.Run()
	if err != nil {
		return false, fmt.Errorf("form interaction failed: %w", err)
	}

	return confirm, nil
}

// promptSelectTimer asks the user to pick one of the given timers.
func promptSelectTimer(
	title string,
	timers []*timer.Timer,
	asOf time.Time,
) (*timer.Timer, error) {
	options := make([]huh.Option[uint64], 0, len(timers))

	for i, v := range timers {
		label := fmt.Sprintf(
			"#%d %s [%s] (active %s)",
			v.ID,
			v.Name,
			v.Category,
			timeutil.FormatDuration(v.ActiveDuration(asOf)),
		)

		opt := huh.NewOption(label, v.ID)
		if i == 0 {
			opt = opt.Selected(true)
		}

		options = append(options, opt)
	}

	var id uint64

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uint64]().
				Title(title).
				Options(options...).
				Value(&id),
		),
	)

	err := form.Run()
	if err != nil {
		return nil, fmt.Errorf("form interaction failed: %w", err)
	}

	for _, v := range timers {
		if v.ID == id {
			return v, nil
		}
	}

	return nil, errors.New("no timer selected")
}
