// Package normalize rewrites untyped candidate trees into the canonical
// document shape before validation. It only relocates existing data: Card
// content slots move into Heading/Text/Button children and the root list is
// wrapped in a Stage when needed. Every function returns a fresh tree and
// leaves its input untouched; applying them twice equals applying them once.
package normalize

import (
	"github.com/goliatone/go-uispec/pkg/model"
)

// promotion maps a Card content slot to the child kind that carries it.
var promotion = []struct {
	slot model.SlotKind
	kind model.NodeKind
}{
	{model.SlotTitle, model.KindHeading},
	{model.SlotBody, model.KindText},
	{model.SlotCTA, model.KindButton},
}

// EnsureStage normalizes the component list of a document-like object and
// guarantees its first entry is a Stage. Missing or non-list components
// become an empty list; a lone component object is treated as a list of one.
func EnsureStage(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc)+1)
	for key, value := range doc {
		if key == "components" {
			continue
		}
		out[key] = copyValue(value)
	}

	var list []any
	switch typed := doc["components"].(type) {
	case []any:
		list = typed
	case map[string]any:
		list = []any{typed}
	}
	out["components"] = Components(list)
	return out
}

// Components normalizes each entry and wraps the whole list in one Stage
// when the first entry is not already a Stage. An empty list stays empty.
func Components(list []any) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, normalizeValue(item))
	}
	if len(out) == 0 || kindOf(out[0]) == model.KindStage {
		return out
	}
	return []any{map[string]any{
		"kind":     string(model.KindStage),
		"children": out,
	}}
}

// Node normalizes one node and its descendants top-down.
func Node(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		out[key] = copyValue(value)
	}
	if kindOf(out) == model.KindCard {
		promote(out)
	}
	if children, ok := out["children"].([]any); ok {
		for idx, child := range children {
			children[idx] = normalizeValue(child)
		}
	}
	return out
}

// promote relocates title/body/cta slots of a Card into child nodes. card
// must be an owned copy; it is modified in place. A Card whose children is
// not a list is left alone for validation to reject.
func promote(card map[string]any) {
	slots, ok := card["slots"].([]any)
	if !ok {
		return
	}
	children, ok := card["children"].([]any)
	if raw, present := card["children"]; present && raw != nil && !ok {
		return
	}

	kept := make([]any, 0, len(slots))
	var synthesized [3][]any
	for _, raw := range slots {
		slot, ok := raw.(map[string]any)
		if !ok {
			kept = append(kept, raw)
			continue
		}
		target := -1
		for idx, rule := range promotion {
			if slotKindOf(slot) == rule.slot {
				target = idx
				break
			}
		}
		if target < 0 {
			kept = append(kept, raw)
			continue
		}

		rule := promotion[target]
		switch {
		case len(synthesized[target]) > 0:
			// already relocated one slot of this kind
		case hasKind(children, rule.kind):
			if child := firstLacking(children, rule.kind, rule.slot); child != nil {
				childSlots, _ := child["slots"].([]any)
				child["slots"] = append(childSlots, slot)
			}
		default:
			synthesized[target] = []any{map[string]any{
				"kind":  string(rule.kind),
				"slots": []any{slot},
			}}
		}
	}

	for _, nodes := range synthesized {
		children = append(children, nodes...)
	}
	card["slots"] = kept
	if children != nil {
		card["children"] = children
	}
}

func hasKind(children []any, kind model.NodeKind) bool {
	for _, child := range children {
		if kindOf(child) == kind {
			return true
		}
	}
	return false
}

func firstLacking(children []any, kind model.NodeKind, slot model.SlotKind) map[string]any {
	for _, raw := range children {
		child, ok := raw.(map[string]any)
		if !ok || kindOf(child) != kind {
			continue
		}
		if !carries(child, slot) {
			return child
		}
	}
	return nil
}

func carries(node map[string]any, kind model.SlotKind) bool {
	slots, _ := node["slots"].([]any)
	for _, raw := range slots {
		if slot, ok := raw.(map[string]any); ok && slotKindOf(slot) == kind {
			return true
		}
	}
	return false
}

func normalizeValue(value any) any {
	if node, ok := value.(map[string]any); ok {
		return Node(node)
	}
	return copyValue(value)
}

func kindOf(value any) model.NodeKind {
	node, ok := value.(map[string]any)
	if !ok {
		return ""
	}
	kind, _ := node["kind"].(string)
	return model.NodeKind(kind)
}

func slotKindOf(slot map[string]any) model.SlotKind {
	kind, _ := slot["slot"].(string)
	return model.SlotKind(kind)
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = copyValue(item)
		}
		return out
	default:
		return typed
	}
}
