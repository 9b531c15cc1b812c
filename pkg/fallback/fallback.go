// Package fallback synthesizes the deterministic document used whenever the
// pipeline cannot accept a candidate. Build is pure and total.
package fallback

import (
	"strings"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
)

const (
	// DefaultTitle is used when the intent carries neither title nor goal.
	DefaultTitle = "Welcome"
	// DefaultCTALabel is used when the intent carries no cta.
	DefaultCTALabel = "Learn more"
	// DefaultAction is the cta action token emitted unless overridden.
	DefaultAction = "click"
	// DefaultBody is the generic filler shown when the intent has no body.
	DefaultBody = "Discover what is new and find the option that fits you best."
)

// Options control the synthesized copy.
type Options struct {
	// DefaultAction is attached to the cta. Empty leaves the action absent.
	DefaultAction string
	FillerBody    string
}

// Option mutates Options.
type Option func(*Options)

// WithDefaultAction overrides the cta action token. Pass "" to omit it.
func WithDefaultAction(action string) Option {
	return func(o *Options) {
		o.DefaultAction = strings.TrimSpace(action)
	}
}

// WithFillerBody overrides the body used when the intent has none.
func WithFillerBody(body string) Option {
	return func(o *Options) {
		if trimmed := strings.TrimSpace(body); trimmed != "" {
			o.FillerBody = trimmed
		}
	}
}

func newOptions(opts []Option) Options {
	options := Options{DefaultAction: DefaultAction, FillerBody: DefaultBody}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// Build returns a single Stage/Card document derived from in. Copy is clamped
// to the slot ceilings so the result always passes validation.
func Build(in intent.Intent, opts ...Option) model.UiSpec {
	options := newOptions(opts)

	title := firstNonBlank(in.Title, in.Goal, DefaultTitle)
	body := firstNonBlank(in.Body, options.FillerBody)
	label := firstNonBlank(in.CTA, DefaultCTALabel)

	card := model.Node{
		Kind: model.KindCard,
		Children: []model.Node{
			{Kind: model.KindHeading, Slots: []model.Slot{model.TitleSlot(Clamp(title, model.MaxTitleLength))}},
			{Kind: model.KindText, Slots: []model.Slot{model.BodySlot(Clamp(body, model.MaxBodyLength))}},
			{Kind: model.KindButton, Slots: []model.Slot{model.CTASlot(
				Clamp(label, model.MaxCTALabelLength),
				Clamp(options.DefaultAction, model.MaxCTAActionLength),
			)}},
		},
	}

	return model.UiSpec{
		Layout: model.LayoutOneCardCTA,
		Style:  model.DefaultStyle(),
		Components: []model.Node{{
			Kind:     model.KindStage,
			Children: []model.Node{card},
		}},
	}
}

// Clamp trims value and cuts it to at most limit code points.
func Clamp(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit]))
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
