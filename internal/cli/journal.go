package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/momverse/momverse/internal/models"
)

// Journal prints the mood journal, newest first.
func (a *App) Journal(ctx context.Context) error {
	entries, err := a.manager.JournalEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Your journal is empty. Use 'write' to add an entry.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s [%s]\n%s\n\n", e.Timestamp.Local().Format("Mon Jan 2 15:04"), e.Mood, e.Text)
	}
	return nil
}

// Write asks for a mood and the entry text and saves the entry.
func (a *App) Write(ctx context.Context) error {
	moods := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		moods[i] = string(m)
	}

	raw, err := getSimpleText(a.reader, "How are you feeling? ("+strings.Join(moods, ", ")+")", a.out)
	if err != nil {
		return err
	}
	mood, err := models.ParseMood(raw)
	if err != nil {
		return err
	}

	text, err := getMultiline(a.reader, "Write your thoughts", a.out)
	if err != nil {
		return err
	}

	if _, err := a.manager.AppendJournalEntry(ctx, models.JournalEntry{Text: text, Mood: mood}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Entry saved.")
	return nil
}
