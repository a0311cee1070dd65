package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/momverse/momverse/internal/feeding"
	"github.com/momverse/momverse/internal/models"
)

const (
	chartBars  = 7
	chartWidth = 30
	feedsShown = 20
)

var errFeedUsage = errors.New("usage: feed left|right|stop|status|demo|bottle <ml>|pump <ml>")

// Feed drives the feeding timer and the quick volume entries.
func (a *App) Feed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errFeedUsage
	}

	switch args[0] {
	case "left", "l", "right", "r":
		side, err := models.ParseSide(args[0])
		if err != nil {
			return err
		}
		committed, err := a.timer.Toggle(ctx, side)
		if err != nil {
			return err
		}
		if committed != nil {
			a.printCommitted(committed)
		}
		if active := a.timer.Active(); active != "" {
			fmt.Fprintf(a.out, "Nursing %s, timer started.\n", active)
		}
		return nil

	case "stop":
		committed, err := a.timer.Stop(ctx)
		if err != nil {
			return err
		}
		a.printCommitted(committed)
		return nil

	case "status":
		if side := a.timer.Active(); side != "" {
			fmt.Fprintf(a.out, "Nursing %s %s\n", side, feeding.FormatClock(a.timer.Elapsed()))
		} else {
			fmt.Fprintln(a.out, "Timer ready 00:00")
		}
		return nil

	case "bottle", "pump":
		if len(args) < 2 {
			return errFeedUsage
		}
		ml, err := strconv.Atoi(args[1])
		if err != nil {
			return feeding.ErrInvalidAmount
		}

		var l models.FeedLog
		if args[0] == "bottle" {
			l, err = a.timer.AddBottle(ctx, ml)
		} else {
			l, err = a.timer.AddPump(ctx, ml)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Saved %s %d ml.\n", l.Type, *l.AmountMl)
		return nil

	case "demo":
		seeded, err := feeding.SeedDemo(ctx, a.manager, a.now())
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintln(a.out, "Added sample feedings.")
		} else {
			fmt.Fprintln(a.out, "Feeding log is not empty, nothing added.")
		}
		return nil

	default:
		return errFeedUsage
	}
}

func (a *App) printCommitted(l *models.FeedLog) {
	fmt.Fprintf(a.out, "Saved %s side, %d min.\n", l.Side, *l.DurationMinutes)
}

// Feeds lists the newest feedings.
func (a *App) Feeds(ctx context.Context) error {
	logs, err := a.manager.FeedLogs(ctx)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No feedings yet.")
		return nil
	}

	if len(logs) > feedsShown {
		logs = logs[:feedsShown]
	}
	for _, l := range logs {
		fmt.Fprintf(a.out, "%s  %s\n", l.Timestamp.Local().Format("Mon Jan 2 15:04"), describeFeed(l))
	}
	return nil
}

func describeFeed(l models.FeedLog) string {
	s := string(l.Type)
	if l.Side != "" {
		s += " " + string(l.Side)
	}
	if l.DurationMinutes != nil {
		s += fmt.Sprintf(" %d min", *l.DurationMinutes)
	}
	if l.AmountMl != nil {
		s += fmt.Sprintf(" %d ml", *l.AmountMl)
	}
	if l.Note != "" {
		s += " (" + l.Note + ")"
	}
	return s
}

// Chart prints the activity chart of the latest feedings.
func (a *App) Chart(ctx context.Context) error {
	logs, err := a.manager.FeedLogs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, feeding.RenderChart(feeding.Chart(logs, chartBars), chartWidth))
	return nil
}
