package feeding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/momverse/momverse/internal/models"
)

// Bar is one column of the activity chart.
type Bar struct {
	Day    string
	Amount int
	Type   models.FeedType
}

// Chart turns the n most recent logs (logs are newest first) into bars.
// Bottle and pump bars carry millilitres; breast bars carry minutes times
// ten so both fit one scale.
func Chart(logs []models.FeedLog, n int) []Bar {
	if n > len(logs) {
		n = len(logs)
	}
	if n < 0 {
		n = 0
	}

	bars := make([]Bar, 0, n)
	for _, l := range logs[:n] {
		bars = append(bars, Bar{
			Day:    l.Timestamp.Local().Format("Mon"),
			Amount: chartAmount(l),
			Type:   l.Type,
		})
	}
	return bars
}

func chartAmount(l models.FeedLog) int {
	if l.Type == models.FeedTypeBreast {
		if l.DurationMinutes == nil {
			return 0
		}
		return *l.DurationMinutes * 10
	}
	if l.AmountMl == nil {
		return 0
	}
	return *l.AmountMl
}

// RenderChart draws bars as horizontal text rows at most width cells wide.
func RenderChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return "no feedings yet\n"
	}

	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Amount)
	}

	var sb strings.Builder
	for _, b := range bars {
		cells := 0
		if peak > 0 {
			cells = b.Amount * width / peak
		}
		fmt.Fprintf(&sb, "%-3s %-6s %s %d\n", b.Day, b.Type, strings.Repeat("#", cells), b.Amount)
	}
	return sb.String()
}

// SeedDemo stores five sample logs, one per day ending at now, when the
// collection is empty. It reports whether anything was written.
func SeedDemo(ctx context.Context, rec Recorder, now time.Time) (bool, error) {
	existing, err := rec.FeedLogs(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	// oldest first so the newest lands on top
	for i := 4; i >= 0; i-- {
		l := models.FeedLog{
			ID:        fmt.Sprintf("demo-%d", i),
			Timestamp: now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		if i%2 == 0 {
			l.Type = models.FeedTypeBottle
			l.AmountMl = models.Int(120 + i*15)
		} else {
			l.Type = models.FeedTypeBreast
			l.DurationMinutes = models.Int(15 + i*4)
			l.Side = models.SideLeft
			if i == 3 {
				l.Side = models.SideRight
			}
		}

		if _, err := rec.AppendFeedLog(ctx, l); err != nil {
			return false, err
		}
	}
	return true, nil
}
