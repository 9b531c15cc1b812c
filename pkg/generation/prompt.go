package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
)

// DefaultLayout is targeted when the intent carries no supported layout hint.
const DefaultLayout = model.LayoutFourCardsCTA

const systemTemplate = `{% autoescape off %}You generate a UiSpec JSON document for {{ summary }}.

Return ONLY valid JSON. No markdown, no comments, no explanations.

### UiSpec schema

{
  "layout": "{{ layout }}",
  "style": {"bg": "{{ style.Background }}", "radius": "{{ style.Radius }}"},
  "components": [
    {
      "kind": "Stage",
      "children": [{{ card_nodes }}]
    }
  ]
}

CardNode:

{
  "kind": "Card",
  "slots": [
    { "slot": "title", "text": string },
    { "slot": "body", "text": string },
    { "slot": "cta", "label": string, "action"?: string },
    { "slot": "media", "kind": "image" | "placeholder", "id"?: string }
  ]
}

### Limits

- title: at most {{ limits.title }} characters.
- body: at most {{ limits.body }} characters.
- cta label: at most {{ limits.label }} characters.
- cta action: at most {{ limits.action }} characters.

### Image library

You may use ONLY these ids for "media.id":

{{ library }}

### Media selection rules (IMPORTANT)

- First, infer the campaign's main product or category from the intent.
- If one or more library ids clearly match it, use them with "kind": "image".
- If NONE of the library ids clearly match, use "kind": "placeholder" and omit "id".
- Never misrepresent a different brand or product line.

### Card content rules

- Exactly {{ cards }} card{{ cards|pluralize }}.
- Each card has a short strong title, a body of 1 to 3 concise sentences, a clear cta and a media slot.
- Copy MUST be derived from the given intent.
- Tone: {{ tone }}.
{% if cards > 1 %}- Cards should be distinct (hero, benefits, lifestyle, bonuses).
{% endif %}- No extra fields beyond this schema.{% endautoescape %}`

var toneGuides = map[intent.Tone]string{
	intent.ToneNeutral:  "clear, informative, brand-safe",
	intent.ToneFriendly: "warm and approachable",
	intent.TonePremium:  "premium, aspirational, brand-safe",
	intent.TonePlayful:  "light and playful without losing clarity",
	intent.ToneUrgent:   "direct with a sense of urgency",
}

// Prompt is a rendered prompt pair plus the layout it asks for.
type Prompt struct {
	System string
	User   string
	Layout model.Layout
}

// LibraryItem is one catalog entry as shown to the model.
type LibraryItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	ExampleURL  string   `json:"exampleUrl"`
}

// PromptBuilder renders the document generation prompt for an intent.
type PromptBuilder struct {
	catalog  *media.Catalog
	template *pongo2.Template
}

// NewPromptBuilder builds a prompt builder over catalog.
func NewPromptBuilder(catalog *media.Catalog) *PromptBuilder {
	return &PromptBuilder{
		catalog:  catalog,
		template: pongo2.Must(pongo2.FromString(systemTemplate)),
	}
}

// TargetLayout returns the layout hint when supported, otherwise DefaultLayout.
func TargetLayout(in intent.Intent) model.Layout {
	hint := model.Layout(strings.ToLower(strings.TrimSpace(in.Layout)))
	if hint.Valid() {
		return hint
	}
	return DefaultLayout
}

// Library lists catalog entries ordered by relevance to the intent.
func (b *PromptBuilder) Library(in intent.Intent) []LibraryItem {
	ranked := b.catalog.Rank(in.Corpus())
	items := make([]LibraryItem, 0, len(ranked))
	for _, entry := range ranked {
		items = append(items, LibraryItem{
			ID:          entry.Entry.ID,
			Description: entry.Entry.Description(),
			Tags:        entry.Entry.Tags,
			ExampleURL:  entry.Entry.URL,
		})
	}
	return items
}

// Build renders the system and user prompts for in.
func (b *PromptBuilder) Build(in intent.Intent) (Prompt, error) {
	layout := TargetLayout(in)
	cards := layout.CardCount()

	library, err := json.MarshalIndent(b.Library(in), "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("generation: encode media library: %w", err)
	}

	nodes := make([]string, cards)
	for idx := range nodes {
		nodes[idx] = "CardNode"
	}

	tone := intent.ParseTone(string(in.Tone))
	system, err := b.template.Execute(pongo2.Context{
		"summary":    summary(layout, cards),
		"layout":     string(layout),
		"style":      model.DefaultStyle(),
		"card_nodes": strings.Join(nodes, ", "),
		"cards":      cards,
		"tone":       toneGuides[tone],
		"library":    string(library),
		"limits": map[string]int{
			"title":  model.MaxTitleLength,
			"body":   model.MaxBodyLength,
			"label":  model.MaxCTALabelLength,
			"action": model.MaxCTAActionLength,
		},
	})
	if err != nil {
		return Prompt{}, fmt.Errorf("generation: render system prompt: %w", err)
	}

	return Prompt{
		System: strings.TrimSpace(system),
		User:   in.Corpus(),
		Layout: layout,
	}, nil
}

func summary(layout model.Layout, cards int) string {
	switch layout {
	case model.LayoutOneCardCTA:
		return "a single promotional card with a call to action"
	case model.LayoutTwoBlockCards:
		return "two promotional block cards"
	case model.LayoutThreeListItems:
		return "a list of three promotional cards"
	default:
		return fmt.Sprintf("a 2x2 grid of %d promotional cards", cards)
	}
}
