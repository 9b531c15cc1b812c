package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/validation"
)

// Report describes how a document was produced. It is diagnostic only and
// never shown to end users.
type Report struct {
	Recovery Recovery                 `json:"recovery"`
	Fallback bool                     `json:"fallback"`
	Layout   model.Layout             `json:"layout,omitempty"`
	Issues   []validation.SchemaIssue `json:"issues,omitempty"`
	Media    []MediaDecision          `json:"media,omitempty"`
}

// MediaDecision records a media reference that was degraded to placeholder.
type MediaDecision struct {
	Path          string          `json:"path"`
	RequestedKind model.MediaKind `json:"requestedKind"`
	RequestedID   string          `json:"requestedId,omitempty"`
	media.Decision
}

// resolveMedia gates every media slot and Media node prop in the generic tree
// in place, depth-first. Only degradations are returned.
func resolveMedia(components []any, scope media.Scope) []MediaDecision {
	var out []MediaDecision
	for idx, item := range components {
		resolveNode(item, fmt.Sprintf("components[%d]", idx), scope, &out)
	}
	return out
}

func resolveNode(value any, path string, scope media.Scope, out *[]MediaDecision) {
	node, ok := value.(map[string]any)
	if !ok {
		return
	}

	if slots, ok := node["slots"].([]any); ok {
		for idx, raw := range slots {
			slot, ok := raw.(map[string]any)
			if !ok || slot["slot"] != string(model.SlotMedia) {
				continue
			}
			gate(slot, fmt.Sprintf("%s.slots[%d]", path, idx), scope, out)
		}
	}

	if kind, _ := node["kind"].(string); kind == string(model.KindMedia) {
		if props, ok := node["props"].(map[string]any); ok {
			_, hasKind := props["kind"]
			_, hasID := props["id"]
			if hasKind || hasID {
				gate(props, path+".props", scope, out)
			}
		}
	}

	if children, ok := node["children"].([]any); ok {
		for idx, child := range children {
			resolveNode(child, fmt.Sprintf("%s.children[%d]", path, idx), scope, out)
		}
	}
}

// gate applies the media decision to a map carrying kind/id keys. Values of
// the wrong type are left for validation to reject.
func gate(target map[string]any, path string, scope media.Scope, out *[]MediaDecision) {
	kind := model.MediaPlaceholder
	if raw, present := target["kind"]; present && raw != nil {
		value, ok := raw.(string)
		if !ok {
			return
		}
		kind = model.MediaKind(value)
	}
	id := ""
	if raw, present := target["id"]; present && raw != nil {
		value, ok := raw.(string)
		if !ok {
			return
		}
		id = value
	}

	decision := scope.Decide(kind, id)
	target["kind"] = string(decision.Kind)
	if decision.ID == "" {
		delete(target, "id")
	} else {
		target["id"] = decision.ID
	}
	if decision.Reason.Degraded() {
		*out = append(*out, MediaDecision{
			Path:          path,
			RequestedKind: kind,
			RequestedID:   id,
			Decision:      decision,
		})
	}
}
