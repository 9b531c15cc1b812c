package orchestrator_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/orchestrator"
	"github.com/goliatone/go-uispec/pkg/testsupport"
)

func TestBuild_CanonicalFixtureIsUnchanged(t *testing.T) {
	path := filepath.Join("testdata", "canonical.json")
	want := testsupport.MustLoadSpec(t, path)
	in := testsupport.MustLoadIntent(t, filepath.Join("testdata", "watch.intent.json"))

	got, report := orchestrator.New().BuildWithReport(testsupport.MustReadCandidate(t, path), in)

	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("canonical document changed (-want +got):\n%s", diff)
	}
	if report.Recovery != orchestrator.RecoveryNone || report.Fallback {
		t.Fatalf("unexpected recovery %+v", report)
	}
	if len(report.Media) != 0 {
		t.Fatalf("expected no media degradation, got %+v", report.Media)
	}
}

func TestBuild_CanonicalFixtureGatesIrrelevantMedia(t *testing.T) {
	path := filepath.Join("testdata", "canonical.json")
	in := testsupport.MustLoadIntent(t, filepath.Join("testdata", "taxes.intent.json"))

	got, report := orchestrator.New().BuildWithReport(testsupport.MustReadCandidate(t, path), in)
	if report.Fallback {
		t.Fatalf("irrelevant media must not trigger the fallback: %+v", report)
	}
	if len(report.Media) != 1 {
		t.Fatalf("expected one media decision, got %+v", report.Media)
	}
	decision := report.Media[0]
	if decision.Path != "components[0].children[0].slots[0]" || decision.Reason != media.ReasonIrrelevant {
		t.Fatalf("unexpected decision %+v", decision)
	}

	cards := got.Cards()
	if len(cards) != 1 {
		t.Fatalf("expected one card, got %d", len(cards))
	}
	slot := cards[0].Slots[0]
	if slot.Kind != model.MediaPlaceholder || slot.ID != "" {
		t.Fatalf("media slot not degraded: %+v", slot)
	}
}
