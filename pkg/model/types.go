package model

import (
	"encoding/json"
	"fmt"
)

// Layout enumerates the supported document layouts.
type Layout string

const (
	LayoutOneCardCTA     Layout = "one-card-cta"
	LayoutTwoBlockCards  Layout = "two-block-cards"
	LayoutThreeListItems Layout = "three-list-items"
	LayoutFourCardsCTA   Layout = "four-cards-cta"
)

var layouts = []Layout{
	LayoutTwoBlockCards,
	LayoutThreeListItems,
	LayoutOneCardCTA,
	LayoutFourCardsCTA,
}

// Layouts returns the supported layouts in declaration order.
func Layouts() []Layout {
	return append([]Layout(nil), layouts...)
}

// Valid reports whether l is one of the supported layouts.
func (l Layout) Valid() bool {
	for _, candidate := range layouts {
		if l == candidate {
			return true
		}
	}
	return false
}

// CardCount returns the number of cards the layout is designed around.
func (l Layout) CardCount() int {
	switch l {
	case LayoutOneCardCTA:
		return 1
	case LayoutTwoBlockCards:
		return 2
	case LayoutThreeListItems:
		return 3
	case LayoutFourCardsCTA:
		return 4
	default:
		return 0
	}
}

// NodeKind enumerates the closed set of node kinds.
type NodeKind string

const (
	KindStage   NodeKind = "Stage"
	KindGrid    NodeKind = "Grid"
	KindCard    NodeKind = "Card"
	KindMedia   NodeKind = "Media"
	KindHeading NodeKind = "Heading"
	KindText    NodeKind = "Text"
	KindButton  NodeKind = "Button"
)

var nodeKinds = []NodeKind{KindStage, KindGrid, KindCard, KindMedia, KindHeading, KindText, KindButton}

// NodeKinds returns every node kind in declaration order.
func NodeKinds() []NodeKind {
	return append([]NodeKind(nil), nodeKinds...)
}

// Valid reports whether k is a known node kind.
func (k NodeKind) Valid() bool {
	for _, candidate := range nodeKinds {
		if k == candidate {
			return true
		}
	}
	return false
}

// SlotKind is the discriminator of the Slot union.
type SlotKind string

const (
	SlotTitle SlotKind = "title"
	SlotBody  SlotKind = "body"
	SlotCTA   SlotKind = "cta"
	SlotMedia SlotKind = "media"
)

// Valid reports whether k is a known slot discriminator.
func (k SlotKind) Valid() bool {
	switch k {
	case SlotTitle, SlotBody, SlotCTA, SlotMedia:
		return true
	default:
		return false
	}
}

// MediaKind selects between a catalog image and a neutral placeholder.
type MediaKind string

const (
	MediaPlaceholder MediaKind = "placeholder"
	MediaImage       MediaKind = "image"
)

// Valid reports whether k is a known media kind.
func (k MediaKind) Valid() bool {
	return k == MediaPlaceholder || k == MediaImage
}

// Text ceilings enforced by the validation gate, measured in code points.
const (
	MaxTitleLength     = 60
	MaxBodyLength      = 220
	MaxCTALabelLength  = 28
	MaxCTAActionLength = 120
)

// Style is the fixed visual literal attached to every document. Candidates
// cannot change it; the pipeline overwrites whatever was proposed.
type Style struct {
	Background string `json:"bg"`
	Radius     string `json:"radius"`
}

// DefaultStyle returns the only accepted style literal.
func DefaultStyle() Style {
	return Style{Background: "#FFFFFF", Radius: "lg"}
}

// Slot is a tagged union keyed by Slot. Only the fields belonging to the
// active variant are meaningful: Text for title/body, Label/Action for cta,
// Kind/ID for media.
type Slot struct {
	Slot   SlotKind  `json:"slot"`
	Text   string    `json:"text,omitempty"`
	Label  string    `json:"label,omitempty"`
	Action string    `json:"action,omitempty"`
	Kind   MediaKind `json:"kind,omitempty"`
	ID     string    `json:"id,omitempty"`
}

// TitleSlot builds a title slot.
func TitleSlot(text string) Slot { return Slot{Slot: SlotTitle, Text: text} }

// BodySlot builds a body slot.
func BodySlot(text string) Slot { return Slot{Slot: SlotBody, Text: text} }

// CTASlot builds a cta slot. An empty action is omitted on the wire.
func CTASlot(label, action string) Slot {
	return Slot{Slot: SlotCTA, Label: label, Action: action}
}

// MediaSlot builds a media slot. The id is dropped unless kind is image.
func MediaSlot(kind MediaKind, id string) Slot {
	if kind == "" {
		kind = MediaPlaceholder
	}
	if kind != MediaImage {
		id = ""
	}
	return Slot{Slot: SlotMedia, Kind: kind, ID: id}
}

// MarshalJSON emits exactly the fields of the active variant so encoded
// documents round-trip through the validation gate.
func (s Slot) MarshalJSON() ([]byte, error) {
	switch s.Slot {
	case SlotTitle, SlotBody:
		return json.Marshal(struct {
			Slot SlotKind `json:"slot"`
			Text string   `json:"text"`
		}{s.Slot, s.Text})
	case SlotCTA:
		return json.Marshal(struct {
			Slot   SlotKind `json:"slot"`
			Label  string   `json:"label"`
			Action string   `json:"action,omitempty"`
		}{s.Slot, s.Label, s.Action})
	case SlotMedia:
		kind := s.Kind
		if kind == "" {
			kind = MediaPlaceholder
		}
		return json.Marshal(struct {
			Slot SlotKind  `json:"slot"`
			Kind MediaKind `json:"kind"`
			ID   string    `json:"id,omitempty"`
		}{s.Slot, kind, s.ID})
	default:
		return nil, fmt.Errorf("model: unknown slot kind %q", s.Slot)
	}
}

// Node is one element of the document tree. A node exclusively owns its
// slots and children; use Clone before handing a subtree to another owner.
type Node struct {
	Kind     NodeKind       `json:"kind"`
	Props    map[string]any `json:"props,omitempty"`
	Slots    []Slot         `json:"slots,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// UiSpec is the validated document root.
//
// Invariants for every value produced by the pipeline:
//   - Components is non-empty and Components[0].Kind is Stage.
//   - Style equals DefaultStyle().
//   - Every reachable Card resolves a title, body, or cta.
//   - Image media reference catalog ids relevant to the request intent.
type UiSpec struct {
	Layout     Layout `json:"layout"`
	Style      Style  `json:"style"`
	Components []Node `json:"components"`
}

// Stage returns the root Stage node when the document is well formed.
func (s UiSpec) Stage() (Node, bool) {
	if len(s.Components) == 0 || s.Components[0].Kind != KindStage {
		return Node{}, false
	}
	return s.Components[0], true
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := Node{Kind: n.Kind}
	if n.Props != nil {
		out.Props = cloneProps(n.Props)
	}
	if n.Slots != nil {
		out.Slots = append([]Slot(nil), n.Slots...)
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for idx, child := range n.Children {
			out.Children[idx] = child.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (s UiSpec) Clone() UiSpec {
	out := UiSpec{Layout: s.Layout, Style: s.Style}
	if s.Components != nil {
		out.Components = make([]Node, len(s.Components))
		for idx, node := range s.Components {
			out.Components[idx] = node.Clone()
		}
	}
	return out
}

func cloneProps(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneProps(typed)
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
