package media

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	cases := map[string][]string{
		"watch8-combo":                    {"watch", "combo"},
		"S24 FE Banner":                   {"banner"},
		"tab-s10-hero":                    {"tab", "hero"},
		`{"goal":"New Galaxy Watch!"}`:    {"goal", "new", "galaxy", "watch"},
		"":                                {},
		"ab cd 123":                       {},
		"Café-Fold":                       {"caf", "fold"},
	}
	for input, want := range cases {
		got := Tokenize(input)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Tokenize(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestScoreCountsDistinctTokens(t *testing.T) {
	if got := Score("watch-watch-ultra", "ultra watch sale"); got != 2 {
		t.Fatalf("expected distinct overlap of 2, got %d", got)
	}
	if got := Score("watch-ultra", "espresso weekend sale"); got != 0 {
		t.Fatalf("expected no overlap, got %d", got)
	}
	if got := Score("watch8-combo", ""); got != 0 {
		t.Fatalf("expected empty corpus to score 0, got %d", got)
	}
}
