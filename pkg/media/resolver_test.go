package media

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
)

func TestResolverDegradesIrrelevantImage(t *testing.T) {
	resolver := NewResolver(Default())
	in := intent.Intent{Goal: "Weekend espresso sale", Tone: intent.ToneFriendly, CTA: "Shop now"}

	got := resolver.Resolve(model.MediaSlot(model.MediaImage, "watch-ultra"), in)
	if diff := cmp.Diff(model.Slot{Slot: model.SlotMedia, Kind: model.MediaPlaceholder}, got); diff != "" {
		t.Fatalf("slot mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverDegradesUnknownID(t *testing.T) {
	resolver := NewResolver(Default())
	in := intent.Intent{Goal: "nonexistent id launch"}

	got := resolver.Resolve(model.MediaSlot(model.MediaImage, "nonexistent-id"), in)
	if got.Kind != model.MediaPlaceholder || got.ID != "" {
		t.Fatalf("expected placeholder, got %+v", got)
	}
}

func TestResolverKeepsRelevantImage(t *testing.T) {
	resolver := NewResolver(Default())
	in := intent.Intent{Goal: "Launch the new Galaxy Watch Ultra"}

	got := resolver.Resolve(model.MediaSlot(model.MediaImage, "watch-ultra"), in)
	if got.Kind != model.MediaImage || got.ID != "watch-ultra" {
		t.Fatalf("expected image to be kept, got %+v", got)
	}
}

func TestResolverStripsStrayID(t *testing.T) {
	resolver := NewResolver(Default())
	slot := model.Slot{Slot: model.SlotMedia, Kind: model.MediaPlaceholder, ID: "watch-ultra"}

	got := resolver.Resolve(slot, intent.Intent{Goal: "watch"})
	if got.ID != "" || got.Kind != model.MediaPlaceholder {
		t.Fatalf("expected stray id to be stripped, got %+v", got)
	}
}

func TestScopeDecideReasons(t *testing.T) {
	scope := NewResolver(Default()).For(intent.Intent{Goal: "fold phones"})
	cases := []struct {
		kind model.MediaKind
		id   string
		want Reason
	}{
		{model.MediaPlaceholder, "", ReasonPlaceholder},
		{model.MediaImage, "  ", ReasonMissingID},
		{model.MediaImage, "nope", ReasonUnknownID},
		{model.MediaImage, "tab-s10-hero", ReasonIrrelevant},
		{model.MediaImage, "fold-flip-combo", ReasonAccepted},
	}
	for _, tc := range cases {
		if got := scope.Decide(tc.kind, tc.id); got.Reason != tc.want {
			t.Fatalf("Decide(%q,%q) reason = %q, want %q", tc.kind, tc.id, got.Reason, tc.want)
		}
	}
}

func TestResolverWithoutCatalogRejectsImages(t *testing.T) {
	got := NewResolver(nil).Resolve(model.MediaSlot(model.MediaImage, "watch-ultra"), intent.Intent{Goal: "watch ultra"})
	if got.Kind != model.MediaPlaceholder {
		t.Fatalf("expected placeholder without catalog, got %+v", got)
	}
}
