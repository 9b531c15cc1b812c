package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeIsLenient(t *testing.T) {
	got, err := Decode([]byte(`{"goal":" Weekend espresso sale ","tone":"Friendly","layout":"one-card-cta","cta":["Shop","now"],"title":42}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Intent{
		Goal:   "Weekend espresso sale",
		Tone:   ToneFriendly,
		Layout: "one-card-cta",
		CTA:    "Shop; now",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("intent mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownToneDegrades(t *testing.T) {
	got, err := Decode([]byte(`{"goal":"x","tone":"sarcastic"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tone != ToneNeutral {
		t.Fatalf("expected neutral tone, got %q", got.Tone)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}

func TestCorpusIncludesFields(t *testing.T) {
	corpus := Intent{Goal: "Galaxy Watch launch", CTA: "Pre-order"}.Corpus()
	for _, want := range []string{"Galaxy Watch launch", "Pre-order"} {
		if !strings.Contains(corpus, want) {
			t.Fatalf("corpus %q missing %q", corpus, want)
		}
	}
}

type stubGenerator struct {
	system, user string
	reply        string
	err          error
}

func (s *stubGenerator) Generate(_ context.Context, system, user string) (string, error) {
	s.system, s.user = system, user
	return s.reply, s.err
}

func TestExtractorExtract(t *testing.T) {
	gen := &stubGenerator{reply: `{"tone":"premium","cta":"Learn more"}`}
	extractor := NewExtractor(gen)

	got, err := extractor.Extract(context.Background(), Brief{Prompt: "Weekend espresso sale", Dos: "Mention free shipping"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Goal != "Weekend espresso sale" {
		t.Fatalf("expected goal to fall back to the prompt, got %q", got.Goal)
	}
	if got.Tone != TonePremium {
		t.Fatalf("unexpected tone %q", got.Tone)
	}
	if !strings.Contains(gen.user, "DOS: Mention free shipping") {
		t.Fatalf("user prompt missing dos: %q", gen.user)
	}
}

func TestExtractorPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewExtractor(&stubGenerator{err: boom}).Extract(context.Background(), Brief{Prompt: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

func TestExtractorRejectsEmptyBrief(t *testing.T) {
	if _, err := NewExtractor(&stubGenerator{}).Extract(context.Background(), Brief{}); err == nil {
		t.Fatalf("expected empty brief error")
	}
}
