// Package visual turns a validated document into a tree of visual primitives.
// Render is a pure recursive dispatch over node kinds; presentation layers
// (HTML, JSON) consume the resulting Tree.
package visual

import (
	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
)

// FrameSize is the edge length of the square Stage frame, in pixels.
const FrameSize = 400

// Kind enumerates visual primitives.
type Kind string

const (
	KindFrame   Kind = "frame"
	KindGrid    Kind = "grid"
	KindCard    Kind = "card"
	KindMedia   Kind = "media"
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindButton  Kind = "button"
)

// Region places a child inside a full-height card.
type Region string

const (
	RegionMedia Region = "media"
	RegionText  Region = "text"
	RegionCTA   Region = "cta"
)

// Card variants.
const (
	VariantBlock = "block"
	VariantList  = "list"
)

// Media sizes.
const (
	SizeFull  = "full"
	SizeCover = "cover"
)

// Element is one visual primitive.
type Element struct {
	Kind       Kind      `json:"kind"`
	Text       string    `json:"text,omitempty"`
	Action     string    `json:"action,omitempty"`
	Src        string    `json:"src,omitempty"`
	Size       string    `json:"size,omitempty"`
	Variant    string    `json:"variant,omitempty"`
	Muted      bool      `json:"muted,omitempty"`
	Padded     bool      `json:"padded,omitempty"`
	FullHeight bool      `json:"fullHeight,omitempty"`
	Region     Region    `json:"region,omitempty"`
	Children   []Element `json:"children,omitempty"`
}

// Placeholder reports whether a media element has nothing to show.
func (e Element) Placeholder() bool {
	return e.Kind == KindMedia && e.Src == ""
}

// Tree is the rendered document.
type Tree struct {
	Layout     model.Layout `json:"layout"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Background string       `json:"background"`
	Radius     string       `json:"radius"`
	Elements   []Element    `json:"elements"`
}

// Render converts spec into a visual Tree. Media URLs are looked up in
// catalog; a nil catalog renders every media element as a placeholder.
func Render(spec model.UiSpec, catalog *media.Catalog) Tree {
	r := renderer{layout: spec.Layout, catalog: catalog}
	style := model.DefaultStyle()
	return Tree{
		Layout:     spec.Layout,
		Width:      FrameSize,
		Height:     FrameSize,
		Background: style.Background,
		Radius:     style.Radius,
		Elements:   r.nodes(spec.Components),
	}
}

type renderer struct {
	layout  model.Layout
	catalog *media.Catalog
}

func (r renderer) hero() bool {
	return r.layout == model.LayoutOneCardCTA
}

func (r renderer) nodes(nodes []model.Node) []Element {
	out := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		if el, ok := r.node(node); ok {
			out = append(out, el)
		}
	}
	return out
}

func (r renderer) node(n model.Node) (Element, bool) {
	switch n.Kind {
	case model.KindStage:
		return Element{Kind: KindFrame, Padded: !r.hero(), Children: r.nodes(n.Children)}, true
	case model.KindGrid:
		return Element{Kind: KindGrid, Children: r.nodes(n.Children)}, true
	case model.KindCard:
		if r.hero() {
			return r.heroCard(n), true
		}
		return r.card(n), true
	case model.KindMedia:
		return r.mediaNode(n), true
	case model.KindHeading:
		return Element{Kind: KindHeading, Text: n.SlotText(model.SlotTitle)}, true
	case model.KindText:
		return Element{Kind: KindText, Text: n.SlotText(model.SlotBody), Muted: n.PropBool("muted")}, true
	case model.KindButton:
		cta := n.SlotCTA()
		if cta.Empty() {
			return Element{}, false
		}
		return Element{Kind: KindButton, Text: cta.Label, Action: cta.Action}, true
	default:
		return Element{}, false
	}
}

// heroCard fills the frame: media flexes on top, text stacks beneath, and
// the cta pins to the bottom.
func (r renderer) heroCard(n model.Node) Element {
	slot, _ := model.CardMedia(n)
	mediaEl := r.media(slot.Kind, slot.ID, SizeFull)
	mediaEl.Region = RegionMedia

	children := []Element{mediaEl}
	if title := model.CardTitle(n); title != "" {
		children = append(children, Element{Kind: KindHeading, Text: title, Region: RegionText})
	}
	if body := model.CardBody(n); body != "" {
		children = append(children, Element{Kind: KindText, Text: body, Region: RegionText})
	}
	if cta := model.CardCTA(n); !cta.Empty() {
		children = append(children, Element{Kind: KindButton, Text: cta.Label, Action: cta.Action, Region: RegionCTA})
	}

	return Element{
		Kind:       KindCard,
		Variant:    VariantBlock,
		FullHeight: true,
		Children:   children,
	}
}

// card renders multi-card layouts. Content carried directly on the card is
// shown first unless a child of the same kind already presents it.
func (r renderer) card(n model.Node) Element {
	var children []Element
	if slot, ok := model.CardMedia(n); ok && !n.HasChild(model.KindMedia) {
		children = append(children, r.media(slot.Kind, slot.ID, SizeFull))
	}
	if title := n.SlotText(model.SlotTitle); title != "" && !n.HasChild(model.KindHeading) {
		children = append(children, Element{Kind: KindHeading, Text: title})
	}
	if body := n.SlotText(model.SlotBody); body != "" && !n.HasChild(model.KindText) {
		children = append(children, Element{Kind: KindText, Text: body})
	}
	if cta := n.SlotCTA(); !cta.Empty() && !n.HasChild(model.KindButton) {
		children = append(children, Element{Kind: KindButton, Text: cta.Label, Action: cta.Action})
	}
	children = append(children, r.nodes(n.Children)...)

	variant := n.PropString("variant", VariantBlock)
	if variant != VariantList {
		variant = VariantBlock
	}
	return Element{Kind: KindCard, Variant: variant, Children: children}
}

// mediaNode reads kind/id from the node's media slot, then from its props.
func (r renderer) mediaNode(n model.Node) Element {
	size := n.PropString("size", SizeFull)
	if size != SizeCover {
		size = SizeFull
	}
	if slot, ok := model.CardMedia(n); ok {
		return r.media(slot.Kind, slot.ID, size)
	}
	kind := model.MediaKind(n.PropString("kind", string(model.MediaPlaceholder)))
	return r.media(kind, n.PropString("id", ""), size)
}

func (r renderer) media(kind model.MediaKind, id, size string) Element {
	el := Element{Kind: KindMedia, Size: size}
	if kind == model.MediaImage && id != "" {
		el.Src = r.catalog.URL(id)
	}
	return el
}
