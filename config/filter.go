package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tl/internal/timeutil"
)

// FilterConfig represents a configuration to filter log entries in the
// database by their start time and category.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Category  string
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.Period24Hours:
		// A rolling window, unlike the day-aligned periods.
		start = now.AddDate(0, 0, -1)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// setFilterConfig updates the filter configuration from command-line
// arguments. Without any time constraint the filter covers all time.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		Category: strings.TrimSpace(ctx.String("category")),
	}

	now := time.Now()

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	switch {
	case ctx.Bool("today"):
		period = timeutil.PeriodToday
	case ctx.Bool("week"):
		period = timeutil.Period7Days
	case ctx.Uint("days") > 0:
		days := int(ctx.Uint("days"))
		filterCfg.StartTime = timeutil.RoundToStart(
			now.AddDate(0, 0, -(days - 1)),
		)
		filterCfg.EndTime = timeutil.RoundToEnd(now)

		return filterCfg, nil
	}

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	start := ctx.String("start")
	end := ctx.String("end")

	if start == "" && end == "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(
			timeutil.PeriodAllTime,
		)

		return filterCfg, nil
	}

	dpCfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	if start != "" {
		dt, err := dateparser.Parse(dpCfg, start)
		if err != nil {
			return nil, errInvalidStartDate.Wrap(err)
		}

		filterCfg.StartTime = dt.Time
	}

	filterCfg.EndTime = timeutil.RoundToEnd(now)

	if end != "" {
		dt, err := dateparser.Parse(dpCfg, end)
		if err != nil {
			return nil, errInvalidEndDate.Wrap(err)
		}

		filterCfg.EndTime = dt.Time
	}

	if !filterCfg.StartTime.IsZero() &&
		filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter log entries
// from command-line arguments.
func Filter(ctx *cli.Context) *FilterConfig {
	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
