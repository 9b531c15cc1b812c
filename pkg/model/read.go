package model

import "strings"

// CTA is the resolved call to action of a node.
type CTA struct {
	Label  string
	Action string
}

// Empty reports whether the CTA has no visible label.
func (c CTA) Empty() bool {
	return strings.TrimSpace(c.Label) == ""
}

// FindSlot returns the first slot of the given kind.
func (n Node) FindSlot(kind SlotKind) (Slot, bool) {
	for _, slot := range n.Slots {
		if slot.Slot == kind {
			return slot, true
		}
	}
	return Slot{}, false
}

// FindChild returns the first direct child of the given kind.
func (n Node) FindChild(kind NodeKind) (Node, bool) {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child, true
		}
	}
	return Node{}, false
}

// HasChild reports whether n has a direct child of the given kind.
func (n Node) HasChild(kind NodeKind) bool {
	_, ok := n.FindChild(kind)
	return ok
}

// SlotText returns the text of the first title/body slot of the given kind,
// or "" when absent or blank.
func (n Node) SlotText(kind SlotKind) string {
	slot, ok := n.FindSlot(kind)
	if !ok || strings.TrimSpace(slot.Text) == "" {
		return ""
	}
	return slot.Text
}

// SlotCTA returns the node's own cta slot, or an empty CTA.
func (n Node) SlotCTA() CTA {
	slot, ok := n.FindSlot(SlotCTA)
	if !ok || strings.TrimSpace(slot.Label) == "" {
		return CTA{}
	}
	return CTA{Label: slot.Label, Action: slot.Action}
}

// CardTitle resolves a card title from its own slots, then from its first
// Heading child.
func CardTitle(n Node) string {
	if text := n.SlotText(SlotTitle); text != "" {
		return text
	}
	if child, ok := n.FindChild(KindHeading); ok {
		return child.SlotText(SlotTitle)
	}
	return ""
}

// CardBody resolves a card body from its own slots, then from its first Text
// child.
func CardBody(n Node) string {
	if text := n.SlotText(SlotBody); text != "" {
		return text
	}
	if child, ok := n.FindChild(KindText); ok {
		return child.SlotText(SlotBody)
	}
	return ""
}

// CardCTA resolves a card CTA from its own slots, then from its first Button
// child.
func CardCTA(n Node) CTA {
	if cta := n.SlotCTA(); !cta.Empty() {
		return cta
	}
	if child, ok := n.FindChild(KindButton); ok {
		return child.SlotCTA()
	}
	return CTA{}
}

// CardMedia returns the card's own media slot.
func CardMedia(n Node) (Slot, bool) {
	slot, ok := n.FindSlot(SlotMedia)
	if !ok {
		return Slot{}, false
	}
	if slot.Kind == "" {
		slot.Kind = MediaPlaceholder
	}
	return slot, true
}

// CardResolves reports whether a card shows at least a title, body, or CTA.
func CardResolves(n Node) bool {
	return CardTitle(n) != "" || CardBody(n) != "" || !CardCTA(n).Empty()
}

// PropString reads a string rendering hint, returning fallback when the prop
// is missing or not a non-empty string.
func (n Node) PropString(key, fallback string) string {
	if n.Props == nil {
		return fallback
	}
	value, ok := n.Props[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// PropBool reads a boolean rendering hint. Non-boolean values are treated as
// truthy when they are non-empty strings or non-zero numbers.
func (n Node) PropBool(key string) bool {
	if n.Props == nil {
		return false
	}
	switch value := n.Props[key].(type) {
	case bool:
		return value
	case string:
		return value != "" && value != "false" && value != "0"
	case float64:
		return value != 0
	case int:
		return value != 0
	default:
		return false
	}
}

// Walk visits nodes depth-first in document order. Returning false from fn
// skips the node's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, node := range nodes {
		if !fn(node) {
			continue
		}
		Walk(node.Children, fn)
	}
}

// Cards returns every Card reachable from the root Stage's children.
func (s UiSpec) Cards() []Node {
	stage, ok := s.Stage()
	if !ok {
		return nil
	}
	var cards []Node
	Walk(stage.Children, func(n Node) bool {
		if n.Kind == KindCard {
			cards = append(cards, n)
		}
		return true
	})
	return cards
}
