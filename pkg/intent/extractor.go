package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator is the content-generation capability the extractor relies on.
// It matches generation.Generator without importing it.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Brief is the free-text campaign input collected from a user.
type Brief struct {
	UserIntent     string `json:"userIntent,omitempty"`
	BusinessIntent string `json:"businessIntent,omitempty"`
	Dos            string `json:"dos,omitempty"`
	Donts          string `json:"donts,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
}

// Empty reports whether the brief carries no text at all.
func (b Brief) Empty() bool {
	return strings.TrimSpace(b.UserIntent+b.BusinessIntent+b.Dos+b.Donts+b.Prompt) == ""
}

const extractorSystemPrompt = `You normalize campaign briefs into a compact JSON object called "intent".
Do not write explanations. Only output valid JSON with these keys:
{"goal": string, "tone": one of [neutral, friendly, premium, playful, urgent],
 "layout": one of [one-card-cta, two-block-cards, three-list-items, four-cards-cta],
 "title": short headline (max 60 chars), "body": supporting copy (max 220 chars),
 "cta": call to action label (max 28 chars)}`

// Extractor turns a Brief into an Intent through a Generator.
type Extractor struct {
	generator Generator
}

// NewExtractor constructs an Extractor.
func NewExtractor(generator Generator) *Extractor {
	return &Extractor{generator: generator}
}

// Extract asks the generator to normalize the brief.
func (e *Extractor) Extract(ctx context.Context, brief Brief) (Intent, error) {
	if e == nil || e.generator == nil {
		return Intent{}, errors.New("intent: generator is required")
	}
	if brief.Empty() {
		return Intent{}, errors.New("intent: brief is empty")
	}

	raw, err := e.generator.Generate(ctx, extractorSystemPrompt, brief.userPrompt())
	if err != nil {
		return Intent{}, fmt.Errorf("intent: extract: %w", err)
	}
	out, err := Decode([]byte(raw))
	if err != nil {
		return Intent{}, fmt.Errorf("intent: decode extracted intent: %w", err)
	}
	if out.Goal == "" {
		out.Goal = firstNonEmpty(brief.Prompt, brief.UserIntent, brief.BusinessIntent)
	}
	return out, nil
}

func (b Brief) userPrompt() string {
	var builder strings.Builder
	write := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		builder.WriteString(label)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteByte('\n')
	}
	write("PROMPT", b.Prompt)
	write("USER INTENT", b.UserIntent)
	write("BUSINESS INTENT", b.BusinessIntent)
	write("DOS", b.Dos)
	write("DONTS", b.Donts)
	return strings.TrimSpace(builder.String())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
