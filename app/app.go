package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tl/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tl app instance.
func Get() *cli.App {
	tlApp := &cli.App{
		Name: "tl",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		tl is a time logger for the command-line. It records how long you work
		on named tasks, keeps breaks out of the totals, and maintains a todo
		list whose items can be linked to timers.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a new timer, pausing any that is currently running",
				Action: startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop a timer and record a log entry for the work done",
				Action: stopAction,
				Flags: []cli.Flag{
					stopCmdFlag,
				},
			},
			{
				Name:   "pause",
				Usage:  "Pause the running timer",
				Action: pauseAction,
			},
			{
				Name:   "resume",
				Usage:  "Resume a paused timer",
				Action: resumeAction,
			},
			{
				Name:   "switch",
				Usage:  "Pause the running timer and resume a paused one",
				Action: switchAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of all open timers",
				Action: statusAction,
			},
			{
				Name: "log",
				Usage: `
				Report the time logged so far. Defaults to a reporting period of
				all time`,
				Action: logAction,
				Flags: []cli.Flag{
					todayFlag,
					weekFlag,
					daysFlag,
					periodFlag,
					startFlag,
					endFlag,
					categoryFlag,
					jsonFlag,
				},
				Subcommands: []*cli.Command{
					{
						Name:   "rm",
						Usage:  "Delete a log entry",
						Action: logRemoveAction,
					},
				},
			},
			{
				Name:  "todo",
				Usage: "Manage the todo list",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a new todo",
						Action: todoAddAction,
					},
					{
						Name:   "list",
						Usage:  "List all todos and the time logged against each",
						Action: todoListAction,
					},
					{
						Name:   "done",
						Usage:  "Mark a todo as done",
						Action: todoDoneAction,
					},
					{
						Name:   "rm",
						Usage:  "Delete a todo",
						Action: todoRemoveAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
		},
		Before: beforeAction,
	}

	return tlApp
}
