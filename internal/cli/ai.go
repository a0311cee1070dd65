package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/momverse/momverse/internal/assistant"
	"github.com/momverse/momverse/internal/filex"
	"github.com/momverse/momverse/internal/models"
)

// readAttachment is a test seam for filex.ReadAttachment.
var readAttachment = filex.ReadAttachment

var (
	errCryUsage       = errors.New("usage: cry <audio file>")
	errEmptySymptom   = errors.New("describe the symptoms or attach a photo")
	errMissingCuisine = errors.New("a cuisine is required")
)

const (
	defaultDiet = "Vegetarian"
	chatEnd     = "/bye"
)

// Cry sends a recorded cry to the assistant.
func (a *App) Cry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errCryUsage
	}

	audio, mimeType, err := readAttachment(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Listening...")
	out, err := a.ai.AnalyzeCry(ctx, audio, mimeType)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}

// Symptom asks for a description, the baby's age and an optional photo.
func (a *App) Symptom(ctx context.Context) error {
	desc, err := getMultiline(a.reader, "Describe the symptoms", a.out)
	if err != nil {
		return err
	}
	age, err := getSimpleText(a.reader, "Baby's age (optional)", a.out)
	if err != nil {
		return err
	}
	photo, err := getSimpleText(a.reader, "Path to a photo (optional)", a.out)
	if err != nil {
		return err
	}

	req := assistant.SymptomRequest{Description: desc, Age: age}
	if photo != "" {
		req.Image, req.ImageMIME, err = readAttachment(photo)
		if err != nil {
			return err
		}
	}
	if req.Description == "" && len(req.Image) == 0 {
		return errEmptySymptom
	}

	out, err := a.ai.AnalyzeSymptom(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}

// Chat runs a wellness conversation until an empty line or /bye. The
// conversation is kept for the rest of the terminal session.
func (a *App) Chat(ctx context.Context) error {
	if len(a.chat) == 0 {
		a.chat = []models.ChatMessage{{Role: models.ChatRoleModel, Text: assistant.ChatGreeting}}
		fmt.Fprintln(a.out, assistant.ChatGreeting)
	}
	fmt.Fprintf(a.out, "(empty line or %s to leave the chat)\n", chatEnd)

	for {
		msg, err := getSimpleText(a.reader, "you", a.out)
		if err != nil {
			return nil
		}
		if msg == "" || msg == chatEnd {
			return nil
		}

		reply, err := a.ai.Chat(ctx, a.chat, msg)
		a.chat = append(a.chat, models.ChatMessage{Role: models.ChatRoleUser, Text: msg})
		if err != nil {
			a.log.Warn(ctx, "chat request failed", "err", err)
			a.chat = append(a.chat, models.ChatMessage{Role: models.ChatRoleModel, Text: assistant.ChatErrorReply, IsError: true})
			fmt.Fprintln(a.out, assistant.ChatErrorReply)
			continue
		}

		a.chat = append(a.chat, models.ChatMessage{Role: models.ChatRoleModel, Text: reply})
		fmt.Fprintln(a.out, reply)
	}
}

// MealPlan asks for a cuisine and a diet and prints a one-day plan.
func (a *App) MealPlan(ctx context.Context) error {
	cuisine, err := getSimpleText(a.reader, "Cuisine (e.g. Indian, Mexican, Korean)", a.out)
	if err != nil {
		return err
	}
	if cuisine == "" {
		return errMissingCuisine
	}

	diet, err := getSimpleText(a.reader, "Diet (Vegetarian, Non-Vegetarian, Vegan, Pescatarian, Everything) ["+defaultDiet+"]", a.out)
	if err != nil {
		return err
	}
	if diet == "" {
		diet = defaultDiet
	}

	fmt.Fprintf(a.out, "Curating a nourishing %s %s plan...\n", cuisine, diet)
	out, err := a.ai.MealPlan(ctx, diet, cuisine)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}
