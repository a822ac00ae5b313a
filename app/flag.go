package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Only show entries that belong to the specified category",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the log as JSON instead of a table",
	}

	todayFlag = &cli.BoolFlag{
		Name:  "today",
		Usage: "Only show entries from the current day",
	}

	weekFlag = &cli.BoolFlag{
		Name:  "week",
		Usage: "Only show entries from the last 7 days",
	}

	daysFlag = &cli.UintFlag{
		Name:  "days",
		Usage: "Only show entries from the last `N` days",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Only show entries within the specified period. Can be one of: today, yesterday, 24hours, 7days, 14days,\n\t\t\t\t30days, 90days, 180days, 365days, all-time. Defaults to all-time",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Only show entries that started on or after this time (natural language is supported, e.g. '3 days ago')",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Only show entries that started on or before this time. Defaults to the current time",
	}

	stopCmdFlag = &cli.StringFlag{
		Name:  "cmd",
		Usage: "Execute an arbitrary command after the timer is stopped",
	}
)
