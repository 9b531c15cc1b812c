// Package intent holds the normalized brief consumed read-only by the
// document pipeline: fallback copy comes from it and media relevance is scored
// against its serialized form.
package intent

import (
	"encoding/json"
	"strings"
)

// Tone is the closed set of copy tones.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
	TonePremium  Tone = "premium"
	TonePlayful  Tone = "playful"
	ToneUrgent   Tone = "urgent"
)

// Tones returns every supported tone.
func Tones() []Tone {
	return []Tone{ToneNeutral, ToneFriendly, TonePremium, TonePlayful, ToneUrgent}
}

// ParseTone maps free text onto a Tone, defaulting to ToneNeutral.
func ParseTone(raw string) Tone {
	candidate := Tone(strings.ToLower(strings.TrimSpace(raw)))
	for _, tone := range Tones() {
		if tone == candidate {
			return tone
		}
	}
	return ToneNeutral
}

// Intent is the upstream normalized brief. Layout is a hint only; the content
// generator picks the actual document layout.
type Intent struct {
	Goal   string `json:"goal"`
	Tone   Tone   `json:"tone"`
	Layout string `json:"layout"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body,omitempty"`
	CTA    string `json:"cta"`
}

// Corpus serializes the intent into the text that media relevance scoring
// tokenizes.
func (i Intent) Corpus() string {
	data, err := json.Marshal(i)
	if err != nil {
		return ""
	}
	return string(data)
}

type wireIntent struct {
	Goal   any `json:"goal"`
	Tone   any `json:"tone"`
	Layout any `json:"layout"`
	Title  any `json:"title"`
	Body   any `json:"body"`
	CTA    any `json:"cta"`
}

// Decode leniently reads an intent from JSON. Fields of the wrong type are
// ignored, string lists are joined, and unknown tones degrade to neutral.
// Malformed input yields an error and the zero Intent.
func Decode(data []byte) (Intent, error) {
	var wire wireIntent
	if err := json.Unmarshal(data, &wire); err != nil {
		return Intent{Tone: ToneNeutral}, err
	}
	return Intent{
		Goal:   flatten(wire.Goal),
		Tone:   ParseTone(flatten(wire.Tone)),
		Layout: flatten(wire.Layout),
		Title:  flatten(wire.Title),
		Body:   flatten(wire.Body),
		CTA:    flatten(wire.CTA),
	}, nil
}

func flatten(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text := flatten(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
