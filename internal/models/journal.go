package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownMood = errors.New("unknown mood")

// Mood is the single tag attached to a journal entry.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodSad      Mood = "sad"
)

// Moods lists the closed set of moods in display order.
var Moods = []Mood{MoodHappy, MoodCalm, MoodTired, MoodStressed, MoodSad}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood accepts a mood name in any letter case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return m, nil
}

type JournalEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Mood      Mood      `json:"mood"`
}

func (e JournalEntry) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
