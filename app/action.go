package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/internal/osutil"
	"github.com/ayoisaiah/tl/internal/pathutil"
	"github.com/ayoisaiah/tl/internal/timeutil"
	"github.com/ayoisaiah/tl/internal/ui"
	"github.com/ayoisaiah/tl/store"
	"github.com/ayoisaiah/tl/timer"
	"github.com/ayoisaiah/tl/todo"
	"github.com/ayoisaiah/tl/worklog"
)

const (
	envUpdateNotifier = "TL_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envTLNoColor      = "TL_NO_COLOR"
)

var logOnce sync.Once

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// initLogger routes the default slog logger to the application log file,
// rotated by lumberjack so that it never grows without bound.
func initLogger(pathToLog string) {
	logOnce.Do(func() {
		w := &lumberjack.Logger{
			Filename:   pathToLog,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}

		slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
	})
}

// checkForUpdates alerts the user if there is
// an updated version of tl from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get("https://github.com/ayoisaiah/tl/releases/latest")
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/tl/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln("A new release of tl is available: %s at %s", version, resp.Request.URL.String())
	}
}

// appConfig loads the configuration and applies the display settings.
func appConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// timerHelper loads the configuration, opens the data store, and wraps it
// in a timer registry.
func timerHelper(
	ctx *cli.Context,
) (*config.Config, store.DB, *timer.Registry, error) {
	cfg, err := appConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, db, timer.NewRegistry(db), nil
}

// entryHelper loads the configuration and retrieves the log entries that
// match the filters on the command-line.
func entryHelper(
	ctx *cli.Context,
) (*config.Config, []*models.LogEntry, store.DB, error) {
	cfg, err := appConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	conf := config.Filter(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return nil, nil, nil, err
	}

	entries, err := worklog.List(db, conf)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, entries, db, nil
}

// clockFormat returns the time-of-day layout matching the user's clock
// preference.
func clockFormat(cfg *config.Config) string {
	if cfg.Display.TwentyFourHour {
		return timeutil.ClockFormat24
	}

	return timeutil.ClockFormat12
}

func dateTimeFormat(cfg *config.Config) string {
	if cfg.Display.TwentyFourHour {
		return timeutil.DateTimeFormat24
	}

	return timeutil.DateTimeFormat12
}

// parseIDArg reads the id argument of a subcommand. A leading # is
// accepted so that ids can be pasted as printed in the tables.
func parseIDArg(ctx *cli.Context) (uint64, error) {
	arg := ctx.Args().First()
	if arg == "" {
		return 0, errors.New("an id argument is required")
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", arg)
	}

	return id, nil
}

// runStopCmd executes the command configured to run after a timer stops.
func runStopCmd(stopCmd string) error {
	if stopCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(stopCmd)
	if err != nil {
		return fmt.Errorf("unable to parse stop_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// startAction handles the start command. If a timer is already running,
// the user is asked to pause it first, since only one timer may run at a
// time.
func startAction(ctx *cli.Context) error {
	cfg, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	running, err := reg.Running()
	if err != nil {
		return err
	}

	if running != nil {
		pterm.Info.Printfln(
			"%s [%s] is currently running",
			ui.Highlight(running.Name),
			running.Category,
		)

		ok, err := promptConfirm("Pause it and start a new timer?")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		_, err = reg.Pause(running.ID, now)
		if err != nil {
			return err
		}
	}

	open, err := todo.Open(db)
	if err != nil {
		return err
	}

	opts, err := promptStartOptions(cfg, open)
	if err != nil {
		return err
	}

	t, err := reg.Start(opts.Name, opts.Category, opts.TodoID, now)
	if err != nil {
		return err
	}

	slog.Info("timer started",
		slog.Uint64("timer_id", t.ID),
		slog.String("name", t.Name),
		slog.String("category", t.Category),
	)

	pterm.Success.Printfln(
		"Started %s [%s] at %s",
		ui.Highlight(t.Name),
		t.Category,
		now.Local().Format(clockFormat(cfg)),
	)

	return nil
}

// stopAction handles the stop command. The running timer is stopped when
// one exists; otherwise a paused timer can be picked and stopped, closing
// its open break at the stop time.
func stopAction(ctx *cli.Context) error {
	cfg, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	target, err := reg.Running()
	if err != nil {
		return err
	}

	if target == nil {
		paused, err := reg.Paused()
		if err != nil {
			return err
		}

		if len(paused) == 0 {
			pterm.Info.Println(noTimersMsg)
			return nil
		}

		target, err = promptSelectTimer("Stop which timer?", paused, now)
		if err != nil {
			return err
		}
	}

	entry, err := reg.Stop(target.ID, now)
	if err != nil {
		return err
	}

	slog.Info("timer stopped",
		slog.Uint64("timer_id", target.ID),
		slog.Uint64("entry_id", entry.ID),
		slog.Duration("active", entry.ActiveDuration),
		slog.Duration("breaks", entry.BreakDuration),
	)

	pterm.Success.Printfln(
		"Stopped %s [%s]: %s active, %s on breaks",
		ui.Highlight(entry.Name),
		entry.Category,
		timeutil.FormatDuration(entry.ActiveDuration),
		timeutil.FormatDuration(entry.BreakDuration),
	)

	if entry.TodoID != 0 {
		err = maybeCompleteTodo(db, entry.TodoID)
		if err != nil {
			return err
		}
	}

	return runStopCmd(
		firstNonEmptyString(ctx.String("cmd"), cfg.Settings.StopCmd),
	)
}

// maybeCompleteTodo offers to mark the todo linked to a stopped timer as
// done.
func maybeCompleteTodo(db store.DB, id uint64) error {
	td, err := db.Todo(id)
	if err != nil {
		// The linked todo may have been deleted in the meantime.
		if errors.Is(err, store.ErrTodoNotFound) {
			return nil
		}

		return err
	}

	if td.Done {
		return nil
	}

	ok, err := promptConfirm(
		fmt.Sprintf(
			"Mark todo #%d (%s) as done?",
			td.ID,
			ui.Truncate(td.Description, 40),
		),
	)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	if err := todo.MarkDone(db, td.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Marked todo #%d as done", td.ID)

	return nil
}

// pauseAction handles the pause command.
func pauseAction(ctx *cli.Context) error {
	_, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	running, err := reg.Running()
	if err != nil {
		return err
	}

	if running == nil {
		pterm.Info.Println("No running timer")
		return nil
	}

	t, err := reg.Pause(running.ID, now)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Paused %s [%s] after %s of active work",
		ui.Highlight(t.Name),
		t.Category,
		timeutil.FormatDuration(t.ActiveDuration(now)),
	)

	return nil
}

// resumeAction handles the resume command. With several paused timers the
// user picks one; resuming is rejected while another timer is running.
func resumeAction(ctx *cli.Context) error {
	cfg, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	running, err := reg.Running()
	if err != nil {
		return err
	}

	if running != nil {
		pterm.Info.Printfln(
			"%s [%s] is already running",
			ui.Highlight(running.Name),
			running.Category,
		)

		return nil
	}

	paused, err := reg.Paused()
	if err != nil {
		return err
	}

	if len(paused) == 0 {
		pterm.Info.Println("No paused timers")
		return nil
	}

	target := paused[0]

	if len(paused) > 1 {
		target, err = promptSelectTimer("Resume which timer?", paused, now)
		if err != nil {
			return err
		}
	}

	t, err := reg.Resume(target.ID, now)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Resumed %s [%s] at %s",
		ui.Highlight(t.Name),
		t.Category,
		now.Local().Format(clockFormat(cfg)),
	)

	return nil
}

// switchAction handles the switch command, pausing the running timer and
// resuming the selected one in a single step.
func switchAction(ctx *cli.Context) error {
	_, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	paused, err := reg.Paused()
	if err != nil {
		return err
	}

	if len(paused) == 0 {
		pterm.Info.Println("No paused timers to switch to")
		return nil
	}

	target, err := promptSelectTimer("Switch to which timer?", paused, now)
	if err != nil {
		return err
	}

	running, err := reg.Running()
	if err != nil {
		return err
	}

	t, err := reg.Switch(target.ID, now)
	if err != nil {
		return err
	}

	if running != nil {
		pterm.Printfln("Paused %s [%s]", ui.Highlight(running.Name), running.Category)
	}

	pterm.Success.Printfln("Switched to %s [%s]", ui.Highlight(t.Name), t.Category)

	return nil
}

// statusAction handles the status command and prints a table of all open
// timers.
func statusAction(ctx *cli.Context) error {
	cfg, db, reg, err := timerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now().UTC()

	timers, err := reg.Timers()
	if err != nil {
		return err
	}

	slog.Debug(spew.Sdump(timers))

	return listTimers(cfg, timers, now)
}

// logAction handles the log command and prints a table of the log entries
// recorded within a time period.
func logAction(ctx *cli.Context) error {
	cfg, entries, db, err := entryHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("json") {
		b, err := json.Marshal(entries)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listEntries(cfg, entries)
}

// logRemoveAction handles the log rm command which deletes a single log
// entry by its id.
func logRemoveAction(ctx *cli.Context) error {
	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	id, err := parseIDArg(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	entry, err := db.Entry(id)
	if err != nil {
		return err
	}

	return delEntry(cfg, db, entry)
}

// todoAddAction handles the todo add command. The todo text is taken from
// the remaining command-line arguments.
func todoAddAction(ctx *cli.Context) error {
	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	description := strings.Join(ctx.Args().Slice(), " ")

	td, err := todo.Add(db, description, time.Now().UTC())
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Added todo #%d: %s", td.ID, td.Description)

	return nil
}

// todoListAction handles the todo list command.
func todoListAction(ctx *cli.Context) error {
	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	todos, err := todo.List(db)
	if err != nil {
		return err
	}

	return listTodos(cfg, db, todos, time.Now().UTC())
}

// todoDoneAction handles the todo done command.
func todoDoneAction(ctx *cli.Context) error {
	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	id, err := parseIDArg(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	if err := todo.MarkDone(db, id); err != nil {
		return err
	}

	pterm.Success.Printfln("Marked todo #%d as done", id)

	return nil
}

// todoRemoveAction handles the todo rm command.
func todoRemoveAction(ctx *cli.Context) error {
	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	id, err := parseIDArg(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	if err := todo.Remove(db, id); err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted todo #%d", id)

	return nil
}

// editConfigAction handles the edit-config command which opens the tl
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg, err := appConfig(ctx)
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/tl/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TL_NO_COLOR is set
	if _, exists := os.LookupEnv(envTLNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	initLogger(pathutil.LogFilePath())

	return nil
}
