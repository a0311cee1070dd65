package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/momverse/momverse/internal/assistant"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	Feeds(ctx context.Context) error
	Chart(ctx context.Context) error
	Journal(ctx context.Context) error
	Write(ctx context.Context) error
	Cry(ctx context.Context, args []string) error
	Symptom(ctx context.Context) error
	Chat(ctx context.Context) error
	MealPlan(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  feed left|right       start, switch or stop the nursing timer
  feed stop|status      stop the timer / show it
  feed bottle|pump <ml> log a bottle feed or pumping session
  feed demo             add sample feedings to an empty log
  feeds, chart          feeding history and activity chart
  journal, write        read / add mood journal entries
  cry <audio file>      analyze a recorded cry
  symptom               symptom check
  chat                  wellness chat
  mealplan              one-day breastfeeding meal plan
  whoami, logout, exit`
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF or on "exit" / "quit". Handler errors are printed and
// the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("momverse %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", assistant.UserMessage(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "whoami", "feed", "feeds", "chart", "journal", "write", "cry", "symptom", "chat", "mealplan":
			return ErrNotLoggedIn
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "feed":
		return a.Feed(ctx, args)
	case "feeds":
		return a.Feeds(ctx)
	case "chart":
		return a.Chart(ctx)
	case "journal":
		return a.Journal(ctx)
	case "write":
		return a.Write(ctx)
	case "cry":
		return a.Cry(ctx, args)
	case "symptom":
		return a.Symptom(ctx)
	case "chat":
		return a.Chat(ctx)
	case "mealplan":
		return a.MealPlan(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
