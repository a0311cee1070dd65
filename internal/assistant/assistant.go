// Package assistant is the AI collaborator behind the cry analyzer, the
// symptom checker, the wellness chat and the meal planner. Responses are
// free text and are shown to the user as-is.
package assistant

import (
	"context"
	"errors"

	"github.com/momverse/momverse/internal/models"
)

var (
	// ErrUnavailable wraps every failed request. The *Error carrying it has
	// a message fit for display.
	ErrUnavailable = errors.New("assistant unavailable")

	ErrNoAPIKey = errors.New("no API key configured")
)

// SymptomRequest describes a symptom check. Age and Image are optional.
type SymptomRequest struct {
	Description string
	Age         string
	Image       []byte
	ImageMIME   string
}

// Assistant answers the four kinds of request MomVerse makes.
type Assistant interface {
	AnalyzeCry(ctx context.Context, audio []byte, mimeType string) (string, error)
	AnalyzeSymptom(ctx context.Context, req SymptomRequest) (string, error)
	Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error)
	MealPlan(ctx context.Context, diet, cuisine string) (string, error)
}

// Error is returned when a request cannot be completed.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": " + e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}

// UserMessage returns the text to show for err: the display message of an
// *Error, or err's own text otherwise.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// Disabled answers every request with ErrUnavailable. It stands in when no
// API key is configured.
type Disabled struct{}

func (Disabled) AnalyzeCry(context.Context, []byte, string) (string, error) {
	return "", disabledError("analyze cry")
}

func (Disabled) AnalyzeSymptom(context.Context, SymptomRequest) (string, error) {
	return "", disabledError("analyze symptom")
}

func (Disabled) Chat(context.Context, []models.ChatMessage, string) (string, error) {
	return "", disabledError("chat")
}

func (Disabled) MealPlan(context.Context, string, string) (string, error) {
	return "", disabledError("meal plan")
}

func disabledError(op string) error {
	return &Error{
		Op:      op,
		Message: "AI features are off. Set GEMINI_API_KEY to enable them.",
		Err:     ErrNoAPIKey,
	}
}
