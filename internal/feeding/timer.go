// Package feeding implements the breast-feeding side timer, quick bottle and
// pump entries, and the activity chart shown by the terminal client.
package feeding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/momverse/momverse/internal/models"
)

var (
	ErrNotRunning    = errors.New("no feeding timer is running")
	ErrInvalidSide   = errors.New("timer side must be Left or Right")
	ErrInvalidAmount = errors.New("amount must be a positive number of ml")
)

// Recorder persists feeding logs. *session.Manager satisfies it.
type Recorder interface {
	AppendFeedLog(ctx context.Context, l models.FeedLog) ([]models.FeedLog, error)
	FeedLogs(ctx context.Context) ([]models.FeedLog, error)
}

// Timer times one nursing side at a time. Elapsed time is derived from the
// clock, so no goroutine ticks in the background.
type Timer struct {
	rec Recorder
	now func() time.Time

	mu        sync.Mutex
	side      models.Side
	startedAt time.Time
}

// NewTimer returns an idle timer. A nil now uses time.Now.
func NewTimer(rec Recorder, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{rec: rec, now: now}
}

// Toggle stops the timer when side is the one running and starts side
// otherwise. It returns the log committed by the call, if any.
func (t *Timer) Toggle(ctx context.Context, side models.Side) (*models.FeedLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.side != "" && t.side == side {
		return t.stop(ctx)
	}
	return t.start(ctx, side)
}

// Start begins timing side. A different running side is committed first
// and the new side starts from zero; starting the running side again is a
// no-op.
func (t *Timer) Start(ctx context.Context, side models.Side) (*models.FeedLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.start(ctx, side)
}

func (t *Timer) start(ctx context.Context, side models.Side) (*models.FeedLog, error) {
	if side != models.SideLeft && side != models.SideRight {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	if t.side == side {
		return nil, nil
	}

	var committed *models.FeedLog
	if t.side != "" {
		l, err := t.stop(ctx)
		if err != nil {
			return nil, err
		}
		committed = l
	}

	t.side = side
	t.startedAt = t.now()
	return committed, nil
}

// Stop commits the running side as a Breast log and resets the timer.
func (t *Timer) Stop(ctx context.Context) (*models.FeedLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stop(ctx)
}

func (t *Timer) stop(ctx context.Context) (*models.FeedLog, error) {
	if t.side == "" {
		return nil, ErrNotRunning
	}

	stoppedAt := t.now()
	l := models.FeedLog{
		Type:            models.FeedTypeBreast,
		Timestamp:       stoppedAt,
		DurationMinutes: models.Int(DurationMinutes(wholeSeconds(stoppedAt.Sub(t.startedAt)))),
		Side:            t.side,
	}

	logs, err := t.rec.AppendFeedLog(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("commit %s side: %w", t.side, err)
	}

	t.side = ""
	t.startedAt = time.Time{}
	if len(logs) > 0 {
		l = logs[0]
	}
	return &l, nil
}

// Elapsed is the running side's time in whole seconds, zero when idle.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.side == "" {
		return 0
	}
	return wholeSeconds(t.now().Sub(t.startedAt))
}

// Active returns the running side, or "" when idle.
func (t *Timer) Active() models.Side {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.side
}

// AddBottle records a bottle feed of ml millilitres.
func (t *Timer) AddBottle(ctx context.Context, ml int) (models.FeedLog, error) {
	return t.addVolume(ctx, models.FeedTypeBottle, ml)
}

// AddPump records a pumping session that yielded ml millilitres.
func (t *Timer) AddPump(ctx context.Context, ml int) (models.FeedLog, error) {
	return t.addVolume(ctx, models.FeedTypePump, ml)
}

func (t *Timer) addVolume(ctx context.Context, typ models.FeedType, ml int) (models.FeedLog, error) {
	if ml <= 0 {
		return models.FeedLog{}, ErrInvalidAmount
	}

	logs, err := t.rec.AppendFeedLog(ctx, models.FeedLog{
		Type:      typ,
		Timestamp: t.now(),
		AmountMl:  models.Int(ml),
	})
	if err != nil {
		return models.FeedLog{}, err
	}
	return logs[0], nil
}

// DurationMinutes rounds a session length up to whole minutes.
func DurationMinutes(d time.Duration) int {
	return int(math.Ceil(d.Seconds() / 60))
}

// FormatClock renders d as MM:SS. Minutes keep counting past 99.
func FormatClock(d time.Duration) string {
	total := int(wholeSeconds(d) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func wholeSeconds(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}
