package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"maitred/internal/models"
)

// Responder produces the conversational reply for turns the engine
// found nothing actionable in. The engine never calls this directly;
// it is host-surface plumbing.
type Responder interface {
	Reply(ctx context.Context, chat *models.ChatContext, text string) (string, error)
}

// LLMResponder answers with a language model.
type LLMResponder struct {
	model llms.LLM
}

// NewLLMResponder initializes the OpenAI-backed responder.
func NewLLMResponder(apiKey, modelName string) (*LLMResponder, error) {
	if modelName == "" {
		modelName = "gpt-4-turbo-preview"
	}
	llm, err := openai.New(
		openai.WithModel(modelName),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &LLMResponder{model: llm}, nil
}

// Reply generates a short in-character waiter response grounded in the
// menu snapshot.
func (r *LLMResponder) Reply(ctx context.Context, chat *models.ChatContext, text string) (string, error) {
	prompt := buildPrompt(chat, text)
	completion, err := llms.GenerateFromSinglePrompt(ctx, r.model, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}
	return strings.TrimSpace(completion), nil
}

func buildPrompt(chat *models.ChatContext, text string) string {
	var b strings.Builder
	b.WriteString("You are a friendly waiter taking orders over chat. Answer briefly.\n")
	b.WriteString("Menu:\n")
	for _, item := range models.AvailableItems(chat.Menu) {
		fmt.Fprintf(&b, "- %s ($%.2f, %s)\n", item.Name, item.Price, item.Category)
	}
	for _, msg := range chat.History {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	fmt.Fprintf(&b, "user: %s\nassistant:", text)
	return b.String()
}

// StaticResponder is the offline fallback used when no API key is
// configured.
type StaticResponder struct{}

// Reply returns a canned nudge back toward the menu.
func (StaticResponder) Reply(_ context.Context, _ *models.ChatContext, _ string) (string, error) {
	return "Happy to help! Would you like to hear the menu, or shall I recommend something?", nil
}
