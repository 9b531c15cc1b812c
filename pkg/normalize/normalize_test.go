package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uispec/pkg/normalize"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return out
}

func TestEnsureStage_WrapsRootAndPromotesTitle(t *testing.T) {
	doc := decode(t, `{"components":[{"kind":"Card","slots":[{"slot":"title","text":"Hi"}]}]}`)

	got := normalize.EnsureStage(doc)

	want := decode(t, `{"components":[{"kind":"Stage","children":[
		{"kind":"Card","slots":[],"children":[
			{"kind":"Heading","slots":[{"slot":"title","text":"Hi"}]}
		]}
	]}]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized tree mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_PromotesInOrderAndKeepsMedia(t *testing.T) {
	card := decode(t, `{"kind":"Card","props":{"variant":"list"},"slots":[
		{"slot":"cta","label":"Buy","action":"buy"},
		{"slot":"media","kind":"image","id":"watch-ultra"},
		{"slot":"body","text":"Body"},
		{"slot":"title","text":"Title"}
	]}`)

	got := normalize.Node(card)

	want := decode(t, `{"kind":"Card","props":{"variant":"list"},
		"slots":[{"slot":"media","kind":"image","id":"watch-ultra"}],
		"children":[
			{"kind":"Heading","slots":[{"slot":"title","text":"Title"}]},
			{"kind":"Text","slots":[{"slot":"body","text":"Body"}]},
			{"kind":"Button","slots":[{"slot":"cta","label":"Buy","action":"buy"}]}
		]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_DoesNotDuplicateExistingChildren(t *testing.T) {
	card := decode(t, `{"kind":"Card",
		"slots":[{"slot":"title","text":"Dropped"},{"slot":"body","text":"Moved"}],
		"children":[
			{"kind":"Heading","slots":[{"slot":"title","text":"Kept"}]},
			{"kind":"Text","props":{"muted":true}}
		]}`)

	got := normalize.Node(card)

	want := decode(t, `{"kind":"Card","slots":[],"children":[
		{"kind":"Heading","slots":[{"slot":"title","text":"Kept"}]},
		{"kind":"Text","props":{"muted":true},"slots":[{"slot":"body","text":"Moved"}]}
	]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_RecursesIntoNestedCards(t *testing.T) {
	grid := decode(t, `{"kind":"Grid","children":[
		{"kind":"Card","slots":[{"slot":"body","text":"A"}]},
		"garbage"
	]}`)

	got := normalize.Node(grid)

	want := decode(t, `{"kind":"Grid","children":[
		{"kind":"Card","slots":[],"children":[{"kind":"Text","slots":[{"slot":"body","text":"A"}]}]},
		"garbage"
	]}`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureStage_Idempotent(t *testing.T) {
	fixtures := []string{
		`{"components":[{"kind":"Card","slots":[{"slot":"title","text":"Hi"},{"slot":"title","text":"Again"}]}]}`,
		`{"layout":"two-block-cards","components":[{"kind":"Stage","children":[{"kind":"Card","slots":[{"slot":"cta","label":"Go"}],"children":[{"kind":"Button"}]}]}]}`,
		`{"components":{"kind":"Card","slots":[{"slot":"body","text":"solo"}]}}`,
		`{"components":"nope"}`,
		`{}`,
	}

	for _, raw := range fixtures {
		once := normalize.EnsureStage(decode(t, raw))
		twice := normalize.EnsureStage(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("normalize not idempotent for %s (-once +twice):\n%s", raw, diff)
		}
	}
}

func TestEnsureStage_EmptyComponentsStayEmpty(t *testing.T) {
	got := normalize.EnsureStage(decode(t, `{"layout":"one-card-cta","components":[]}`))
	list, ok := got["components"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("expected empty component list, got %#v", got["components"])
	}
	if got["layout"] != "one-card-cta" {
		t.Fatalf("expected layout preserved, got %#v", got["layout"])
	}
}

func TestNode_DoesNotMutateInput(t *testing.T) {
	raw := `{"kind":"Card","slots":[{"slot":"title","text":"Hi"}]}`
	card := decode(t, raw)

	_ = normalize.Node(card)

	if diff := cmp.Diff(decode(t, raw), card); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestNode_LeavesCardWithMalformedChildrenUntouched(t *testing.T) {
	card := decode(t, `{"kind":"Card","slots":[{"slot":"title","text":"Hi"}],"children":"garbage"}`)

	got := normalize.Node(card)

	if diff := cmp.Diff(card, got); diff != "" {
		t.Fatalf("malformed card was rewritten (-want +got):\n%s", diff)
	}
}
