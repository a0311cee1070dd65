package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momverse/momverse/internal/logging"
	"github.com/momverse/momverse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGenerator records the last request and replies with reply or err.
type fakeGenerator struct {
	reply string
	err   error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	deadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	_, f.deadline = ctx.Deadline()

	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.reply, genai.RoleModel)}},
	}, nil
}

func newTestGemini(gen *fakeGenerator) *Gemini {
	return newGemini(gen, Config{}, logging.Discard())
}

func TestGemini_SystemInstructionAndModel(t *testing.T) {
	gen := &fakeGenerator{reply: "rest well"}
	g := newTestGemini(gen)

	out, err := g.MealPlan(context.Background(), "Vegetarian", "")
	require.NoError(t, err)
	assert.Equal(t, "rest well", out)

	assert.Equal(t, DefaultModel, gen.model)
	require.NotNil(t, gen.config)
	require.NotNil(t, gen.config.SystemInstruction)
	require.Len(t, gen.config.SystemInstruction.Parts, 1)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "NEVER give diagnoses")
	assert.False(t, gen.deadline)
}

func TestGemini_MealPlanPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "plan"}
	g := newTestGemini(gen)

	_, err := g.MealPlan(context.Background(), "Vegan", "")
	require.NoError(t, err)

	require.Len(t, gen.contents, 1)
	prompt := gen.contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Cuisine/Region: International.")
	assert.Contains(t, prompt, "Diet Preference: Vegan.")
	assert.Contains(t, prompt, "STRICTLY NO BEEF")
}

func TestGemini_AnalyzeCrySendsAudioFirst(t *testing.T) {
	gen := &fakeGenerator{reply: "hungry"}
	g := newTestGemini(gen)

	out, err := g.AnalyzeCry(context.Background(), []byte{1, 2, 3}, "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, "hungry", out)

	require.Len(t, gen.contents, 1)
	parts := gen.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "audio/webm", parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, CryDisclaimer)
}

func TestGemini_AnalyzeSymptom(t *testing.T) {
	gen := &fakeGenerator{reply: "looks like a rash"}
	g := newTestGemini(gen)

	_, err := g.AnalyzeSymptom(context.Background(), SymptomRequest{Description: "red spots", Age: "3 months"})
	require.NoError(t, err)

	parts := gen.contents[0].Parts
	require.Len(t, parts, 1)
	assert.Contains(t, parts[0].Text, `"red spots"`)
	assert.Contains(t, parts[0].Text, "Baby's Age: 3 months.")
	assert.NotContains(t, parts[0].Text, "attached image")
	assert.Contains(t, parts[0].Text, SymptomDisclaimer)

	_, err = g.AnalyzeSymptom(context.Background(), SymptomRequest{Description: "spots", Image: []byte("png"), ImageMIME: "image/png"})
	require.NoError(t, err)

	parts = gen.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/png", parts[0].InlineData.MIMEType)
	assert.Contains(t, parts[1].Text, "attached image")
	assert.NotContains(t, parts[1].Text, "Baby's Age")
}

func TestGemini_ChatHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "you're doing great"}
	g := newTestGemini(gen)

	history := []models.ChatMessage{
		{Role: models.ChatRoleModel, Text: ChatGreeting},
		{Role: models.ChatRoleUser, Text: "tired"},
		{Role: models.ChatRoleModel, Text: ChatErrorReply, IsError: true},
	}

	out, err := g.Chat(context.Background(), history, "still tired")
	require.NoError(t, err)
	assert.Equal(t, "you're doing great", out)

	require.Len(t, gen.contents, 3)
	assert.Equal(t, string(genai.RoleModel), gen.contents[0].Role)
	assert.Equal(t, string(genai.RoleUser), gen.contents[1].Role)
	assert.Equal(t, "still tired", gen.contents[2].Parts[0].Text)
}

func TestGemini_EmptyReplyUsesFallback(t *testing.T) {
	gen := &fakeGenerator{reply: "   "}
	g := newTestGemini(gen)
	ctx := context.Background()

	out, err := g.AnalyzeCry(ctx, []byte{0}, "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, fallbackCry, out)

	out, err = g.AnalyzeSymptom(ctx, SymptomRequest{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, fallbackSymptom, out)

	out, err = g.Chat(ctx, nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, fallbackChat, out)

	out, err = g.MealPlan(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, fallbackMealPlan, out)
}

func TestGemini_FailureIsUnavailable(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := newTestGemini(&fakeGenerator{err: boom})

	_, err := g.Chat(context.Background(), nil, "hi")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, failChat, UserMessage(err))

	_, err = g.AnalyzeCry(context.Background(), nil, "audio/wav")
	assert.Equal(t, failCry, UserMessage(err))
}

func TestGemini_TimeoutSetsDeadline(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	g := newGemini(gen, Config{Model: "gemini-test", Timeout: time.Second}, logging.Discard())

	_, err := g.MealPlan(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, gen.deadline)
	assert.Equal(t, "gemini-test", gen.model)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), Config{}, logging.Discard())
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestDisabled(t *testing.T) {
	var a Assistant = Disabled{}
	ctx := context.Background()

	_, err := a.Chat(ctx, nil, "hi")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.Contains(t, UserMessage(err), "GEMINI_API_KEY")

	_, err = a.MealPlan(ctx, "", "")
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = a.AnalyzeCry(ctx, nil, "")
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = a.AnalyzeSymptom(ctx, SymptomRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
