package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/momverse/momverse/internal/assistant"
	"github.com/momverse/momverse/internal/feeding"
	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/models"
	"github.com/momverse/momverse/internal/session"
)

var ErrNotLoggedIn = errors.New("please login or register first")

// App holds the client state for one terminal session.
type App struct {
	manager *session.Manager
	timer   *feeding.Timer
	ai      assistant.Assistant
	log     logging.Logger
	now     func() time.Time

	reader *bufio.Reader
	out    io.Writer

	user *models.User
	chat []models.ChatMessage
}

// Deps are the collaborators an App drives.
type Deps struct {
	Manager   *session.Manager
	Assistant assistant.Assistant
	Logger    logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Assistant == nil {
		d.Assistant = assistant.Disabled{}
	}
	return &App{
		manager: d.Manager,
		timer:   feeding.NewTimer(d.Manager, d.Now),
		ai:      d.Assistant,
		log:     d.Logger,
		now:     d.Now,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the stored session and serves commands until exit.
func (a *App) Run(ctx context.Context) error {
	u, err := a.manager.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	a.user = u

	fmt.Fprintln(a.out, "Welcome to MomVerse (type 'help' for commands)")
	if a.user != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.user.Name)
	}

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.timer.Active() != "" {
		if _, err := a.timer.Stop(ctx); err != nil {
			a.log.Error(ctx, "commit running timer on exit", "err", err)
		} else {
			fmt.Fprintln(a.out, "Saved the running feeding timer.")
		}
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Name
	}
	if side := a.timer.Active(); side != "" {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s %s", side, feeding.FormatClock(a.timer.Elapsed()))
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
