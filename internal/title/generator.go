package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"threadline/backend/internal/llm"
	"threadline/backend/internal/model"
)

// StrategyDelegated asks the completion upstream for a title; anything else
// uses the local heuristic only.
const (
	StrategyHeuristic = "heuristic"
	StrategyDelegated = "delegated"
)

const titleInstruction = `Generate a concise, descriptive title for a conversation that starts with this user message: %q

Requirements:
- Maximum 50 characters
- Remove common question starters like "Can you", "Please", "How do I", etc.
- Use title case
- Don't use quotes in the title
- Focus on the main topic or request

Title:`

// Generator produces thread titles. With a delegated strategy it asks the
// completion upstream and falls back to the heuristic on any failure; it
// never returns an error to the caller.
type Generator struct {
	provider llm.CompletionProvider
	model    string
	strategy string
	opts     Options
}

func NewGenerator(provider llm.CompletionProvider, completionModel, strategy string, opts Options) *Generator {
	return &Generator{
		provider: provider,
		model:    completionModel,
		strategy: strategy,
		opts:     opts,
	}
}

// Generate returns a title for the conversation. The result is always usable:
// on delegation failure it degrades to the heuristic, and the heuristic
// itself degrades to the default title.
func (g *Generator) Generate(ctx context.Context, messages []model.Message) string {
	fallback := FromMessages(messages, g.opts)
	if g.strategy != StrategyDelegated || g.provider == nil {
		return fallback
	}

	content := firstUserText(messages)
	if content == "" {
		return fallback
	}

	resp, err := g.provider.Complete(ctx, &llm.CompletionRequest{
		Model:       g.model,
		Messages:    []llm.Message{{Role: model.RoleUser, Content: fmt.Sprintf(titleInstruction, content)}},
		Temperature: 0.3,
		MaxTokens:   20,
	})
	if err != nil {
		slog.Warn("Delegated title generation failed, using heuristic", "error", err)
		return fallback
	}

	generated := strings.TrimSpace(resp.Text)
	generated = strings.Trim(generated, `"'`)
	if runes := []rune(generated); len(runes) > 50 {
		generated = string(runes[:47]) + "..."
	}
	if utf8.RuneCountInString(generated) < MinLength {
		return fallback
	}
	return generated
}

func firstUserText(messages []model.Message) string {
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			return strings.TrimSpace(model.TextContent(msg.Content))
		}
	}
	return ""
}
