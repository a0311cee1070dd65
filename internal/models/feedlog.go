package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingTimestamp = errors.New("missing timestamp")
	ErrMissingID        = errors.New("missing id")
	ErrUnknownSide      = errors.New("unknown side")
)

// FeedType classifies a feeding session.
type FeedType string

const (
	FeedTypeBreast FeedType = "Breast"
	FeedTypeBottle FeedType = "Bottle"
	FeedTypePump   FeedType = "Pump"
)

// Side is the nursing side of a breast-feeding session.
type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
	SideBoth  Side = "Both"
)

// ParseSide accepts a side name in any letter case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return SideLeft, nil
	case "right", "r":
		return SideRight, nil
	case "both", "b":
		return SideBoth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

// FeedLog is one feeding record. DurationMinutes and Side describe
// breast-feeding; AmountMl describes bottle and pump sessions. Nothing
// enforces that pairing.
type FeedLog struct {
	ID              string    `json:"id"`
	Type            FeedType  `json:"type"`
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	AmountMl        *int      `json:"amountMl,omitempty"`
	Side            Side      `json:"side,omitempty"`
	Note            string    `json:"note,omitempty"`
}

// Validate checks the fields a stored record cannot be read back without.
func (l FeedLog) Validate() error {
	if l.ID == "" {
		return ErrMissingID
	}
	if l.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// Int returns a pointer to v, for the optional numeric fields.
func Int(v int) *int {
	return &v
}
