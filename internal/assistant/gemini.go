package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/models"
	"google.golang.org/genai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// generator is the part of *genai.Models the assistant calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gemini implements Assistant on the Gemini API.
type Gemini struct {
	gen     generator
	model   string
	timeout time.Duration
	log     logging.Logger
}

// NewGemini creates a Gemini API client. It returns ErrNoAPIKey when
// cfg.APIKey is empty.
func NewGemini(ctx context.Context, cfg Config, log logging.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGemini(client.Models, cfg, log), nil
}

func newGemini(gen generator, cfg Config, log logging.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Gemini{
		gen:     gen,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log.With("component", "assistant", "model", cfg.Model),
	}
}

// AnalyzeCry sends a recording of a baby crying together with the cry prompt.
func (g *Gemini) AnalyzeCry(ctx context.Context, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(audio, mimeType),
			genai.NewPartFromText(cryPrompt()),
		}, genai.RoleUser),
	}
	return g.generate(ctx, "analyze cry", contents, fallbackCry, failCry)
}

// AnalyzeSymptom sends the description, the optional age and the optional
// photo. The photo goes first.
func (g *Gemini) AnalyzeSymptom(ctx context.Context, req SymptomRequest) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(symptomPrompt(req))}
	if len(req.Image) > 0 && req.ImageMIME != "" {
		parts = append([]*genai.Part{genai.NewPartFromBytes(req.Image, req.ImageMIME)}, parts...)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.generate(ctx, "analyze symptom", contents, fallbackSymptom, failSymptom)
}

// Chat continues a conversation. Messages flagged IsError were never part
// of the exchange and are left out of the history.
func (g *Gemini) Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		if m.IsError {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if m.Role == models.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	return g.generate(ctx, "chat", contents, fallbackChat, failChat)
}

// MealPlan asks for a one-day breastfeeding meal plan.
func (g *Gemini) MealPlan(ctx context.Context, diet, cuisine string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(mealPlanPrompt(diet, cuisine), genai.RoleUser)}
	return g.generate(ctx, "meal plan", contents, fallbackMealPlan, failMealPlan)
}

func (g *Gemini) generate(ctx context.Context, op string, contents []*genai.Content, fallback, failMsg string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	start := time.Now()
	resp, err := g.gen.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		g.log.Error(ctx, "generate content failed", "op", op, "err", err)
		return "", &Error{Op: op, Message: failMsg, Err: err}
	}
	g.log.Debug(ctx, "generate content", "op", op, "elapsed", time.Since(start))

	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		return fallback, nil
	}
	return text, nil
}
