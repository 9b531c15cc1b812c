package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
)

// CollectBrief asks for the free-text campaign brief. The prompt field is
// required; the rest may be left blank.
func CollectBrief(ctx context.Context, driver Driver) (intent.Brief, error) {
	if driver == nil {
		return intent.Brief{}, errors.New("prompt: driver is required")
	}

	var brief intent.Brief
	steps := []struct {
		target *string
		cfg    InputConfig
	}{
		{&brief.Prompt, InputConfig{Message: "What should the surface promote?", Validator: required}},
		{&brief.UserIntent, InputConfig{Message: "What is the viewer trying to do?"}},
		{&brief.BusinessIntent, InputConfig{Message: "What does the business want from it?"}},
		{&brief.Dos, InputConfig{Message: "Anything the copy must do?"}},
		{&brief.Donts, InputConfig{Message: "Anything the copy must avoid?"}},
	}
	for _, step := range steps {
		value, err := driver.Input(ctx, step.cfg)
		if err != nil {
			return intent.Brief{}, err
		}
		*step.target = strings.TrimSpace(value)
	}
	return brief, nil
}

// CollectIntent asks for every Intent field directly, for use without an
// extraction model.
func CollectIntent(ctx context.Context, driver Driver) (intent.Intent, error) {
	if driver == nil {
		return intent.Intent{}, errors.New("prompt: driver is required")
	}

	goal, err := driver.Input(ctx, InputConfig{Message: "Goal", Validator: required})
	if err != nil {
		return intent.Intent{}, err
	}

	tones := intent.Tones()
	toneOptions := make([]string, len(tones))
	for i, tone := range tones {
		toneOptions[i] = string(tone)
	}
	toneIdx, err := driver.Select(ctx, SelectConfig{Message: "Tone", Options: toneOptions})
	if err != nil {
		return intent.Intent{}, err
	}

	layouts := model.Layouts()
	layoutOptions := make([]string, len(layouts))
	for i, layout := range layouts {
		layoutOptions[i] = string(layout)
	}
	layoutIdx, err := driver.Select(ctx, SelectConfig{
		Message:      "Layout hint",
		Options:      layoutOptions,
		DefaultIndex: len(layoutOptions) - 1,
	})
	if err != nil {
		return intent.Intent{}, err
	}

	title, err := driver.Input(ctx, InputConfig{Message: "Title (optional)", Validator: maxChars(model.MaxTitleLength)})
	if err != nil {
		return intent.Intent{}, err
	}
	body, err := driver.Input(ctx, InputConfig{Message: "Body (optional)", Validator: maxChars(model.MaxBodyLength)})
	if err != nil {
		return intent.Intent{}, err
	}
	cta, err := driver.Input(ctx, InputConfig{Message: "Call to action", Validator: maxChars(model.MaxCTALabelLength)})
	if err != nil {
		return intent.Intent{}, err
	}

	out := intent.Intent{
		Goal:  strings.TrimSpace(goal),
		Tone:  intent.ToneNeutral,
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
		CTA:   strings.TrimSpace(cta),
	}
	if toneIdx >= 0 && toneIdx < len(tones) {
		out.Tone = tones[toneIdx]
	}
	if layoutIdx >= 0 && layoutIdx < len(layouts) {
		out.Layout = string(layouts[layoutIdx])
	}
	return out, nil
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func maxChars(limit int) func(string) error {
	return func(value string) error {
		if n := utf8.RuneCountInString(strings.TrimSpace(value)); n > limit {
			return fmt.Errorf("keep it under %d characters (%d)", limit, n)
		}
		return nil
	}
}
