package media

import (
	"strings"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
)

// Reason explains a resolver decision.
type Reason string

const (
	ReasonAccepted    Reason = "accepted"
	ReasonPlaceholder Reason = "placeholder"
	ReasonMissingID   Reason = "missing-id"
	ReasonUnknownID   Reason = "unknown-id"
	ReasonIrrelevant  Reason = "irrelevant"
)

// Degraded reports whether the decision rewrote an image to a placeholder.
func (r Reason) Degraded() bool {
	switch r {
	case ReasonMissingID, ReasonUnknownID, ReasonIrrelevant:
		return true
	default:
		return false
	}
}

// Decision is the outcome of resolving one media reference.
type Decision struct {
	Kind   model.MediaKind `json:"kind"`
	ID     string          `json:"id,omitempty"`
	Score  int             `json:"score"`
	Reason Reason          `json:"reason"`
}

// Resolver applies the relevance gate against a catalog.
type Resolver struct {
	catalog *Catalog
}

// NewResolver builds a resolver over catalog. A nil catalog rejects every
// image.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the resolver's catalog.
func (r *Resolver) Catalog() *Catalog {
	if r == nil {
		return nil
	}
	return r.catalog
}

// Resolve gates a single media slot against the intent.
func (r *Resolver) Resolve(slot model.Slot, in intent.Intent) model.Slot {
	return r.For(in).Resolve(slot)
}

// For scopes the resolver to one intent so its corpus is tokenized once.
func (r *Resolver) For(in intent.Intent) Scope {
	return Scope{catalog: r.Catalog(), tokens: NewTokenSet(in.Corpus())}
}

// Scope is a resolver bound to one intent corpus.
type Scope struct {
	catalog *Catalog
	tokens  TokenSet
}

// Decide applies the gate to a raw kind/id pair. Kinds other than image keep
// their value and lose the id; image survives only for a catalog id sharing
// at least one token with the intent.
func (s Scope) Decide(kind model.MediaKind, id string) Decision {
	if kind != model.MediaImage {
		return Decision{Kind: kind, Reason: ReasonPlaceholder}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Decision{Kind: model.MediaPlaceholder, Reason: ReasonMissingID}
	}
	if !s.catalog.Has(id) {
		return Decision{Kind: model.MediaPlaceholder, Reason: ReasonUnknownID}
	}
	score := s.tokens.Score(id)
	if score == 0 {
		return Decision{Kind: model.MediaPlaceholder, Reason: ReasonIrrelevant}
	}
	return Decision{Kind: model.MediaImage, ID: id, Score: score, Reason: ReasonAccepted}
}

// Resolve gates a typed media slot. Non-media slots are returned unchanged.
func (s Scope) Resolve(slot model.Slot) model.Slot {
	if slot.Slot != model.SlotMedia {
		return slot
	}
	kind := slot.Kind
	if kind == "" {
		kind = model.MediaPlaceholder
	}
	decision := s.Decide(kind, slot.ID)
	slot.Kind = decision.Kind
	slot.ID = decision.ID
	return slot
}
