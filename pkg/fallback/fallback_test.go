package fallback_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uispec/pkg/fallback"
	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/validation"
)

func TestBuild_UsesGoalWhenTitleMissing(t *testing.T) {
	spec := fallback.Build(intent.Intent{Goal: "Sale"})

	want := model.UiSpec{
		Layout: model.LayoutOneCardCTA,
		Style:  model.DefaultStyle(),
		Components: []model.Node{{
			Kind: model.KindStage,
			Children: []model.Node{{
				Kind: model.KindCard,
				Children: []model.Node{
					{Kind: model.KindHeading, Slots: []model.Slot{model.TitleSlot("Sale")}},
					{Kind: model.KindText, Slots: []model.Slot{model.BodySlot(fallback.DefaultBody)}},
					{Kind: model.KindButton, Slots: []model.Slot{model.CTASlot("Learn more", "click")}},
				},
			}},
		}},
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Precedence(t *testing.T) {
	cases := map[string]struct {
		in    intent.Intent
		title string
		body  string
		label string
	}{
		"empty":         {in: intent.Intent{}, title: "Welcome", body: fallback.DefaultBody, label: "Learn more"},
		"title wins":    {in: intent.Intent{Goal: "Goal", Title: "Title"}, title: "Title", body: fallback.DefaultBody, label: "Learn more"},
		"blank title":   {in: intent.Intent{Goal: "Goal", Title: "   "}, title: "Goal", body: fallback.DefaultBody, label: "Learn more"},
		"explicit copy": {in: intent.Intent{Title: "T", Body: "B", CTA: "Shop"}, title: "T", body: "B", label: "Shop"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			spec := fallback.Build(tc.in)
			card := spec.Cards()[0]
			if got := model.CardTitle(card); got != tc.title {
				t.Fatalf("title: want %q, got %q", tc.title, got)
			}
			if got := model.CardBody(card); got != tc.body {
				t.Fatalf("body: want %q, got %q", tc.body, got)
			}
			if got := model.CardCTA(card).Label; got != tc.label {
				t.Fatalf("label: want %q, got %q", tc.label, got)
			}
		})
	}
}

func TestBuild_ClampsToCeilingsAndValidates(t *testing.T) {
	in := intent.Intent{
		Title: strings.Repeat("t", 200),
		Body:  strings.Repeat("ü", 500),
		CTA:   strings.Repeat("c", 40),
	}
	spec := fallback.Build(in, fallback.WithDefaultAction(strings.Repeat("a", 300)))

	if _, err := validation.Validate(spec); err != nil {
		t.Fatalf("fallback must validate: %v", err)
	}
	card := spec.Cards()[0]
	if n := utf8.RuneCountInString(model.CardBody(card)); n != model.MaxBodyLength {
		t.Fatalf("expected body clamped to %d, got %d", model.MaxBodyLength, n)
	}
	if n := len(model.CardCTA(card).Action); n != model.MaxCTAActionLength {
		t.Fatalf("expected action clamped to %d, got %d", model.MaxCTAActionLength, n)
	}
}

func TestBuild_Options(t *testing.T) {
	spec := fallback.Build(intent.Intent{}, fallback.WithDefaultAction(""), fallback.WithFillerBody("Custom filler"))
	card := spec.Cards()[0]
	if action := model.CardCTA(card).Action; action != "" {
		t.Fatalf("expected empty action, got %q", action)
	}
	if body := model.CardBody(card); body != "Custom filler" {
		t.Fatalf("expected custom filler, got %q", body)
	}
}

func TestClamp(t *testing.T) {
	if got := fallback.Clamp("  hello world  ", 5); got != "hello" {
		t.Fatalf("unexpected clamp %q", got)
	}
	if got := fallback.Clamp("abc", 0); got != "" {
		t.Fatalf("expected empty clamp, got %q", got)
	}
}
