// Package generation talks to the external content-generation service. It
// owns the prompts sent to the model and the provider clients; everything it
// returns is untrusted candidate text for the orchestrator to gate.
package generation

import (
	"context"
	"errors"
	"strings"
)

// Generator produces candidate text from a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Generate implements Generator.
func (f Func) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}

// ErrEmptyCompletion is returned when the provider answers without content.
var ErrEmptyCompletion = errors.New("generation: empty completion")

// Static returns a Generator that always answers with text. It backs the
// "static" provider used for offline runs and tests.
func Static(text string) Generator {
	return Func(func(ctx context.Context, _, _ string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return text, nil
	})
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if newline := strings.IndexByte(text, '\n'); newline >= 0 {
		text = text[newline+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
