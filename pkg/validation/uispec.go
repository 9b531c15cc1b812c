// Package validation is the schema gate for UiSpec candidates. It type-checks
// an untyped JSON tree against the closed document grammar and either returns
// a typed model.UiSpec or a ValidationError listing every violation by path.
// Over-long text is rejected, never truncated.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-uispec/pkg/model"
)

// MaxDepth bounds node nesting so adversarial candidates cannot exhaust the
// stack of downstream tree walks.
const MaxDepth = 32

// Validate checks candidate against the document grammar. candidate may be a
// decoded JSON tree (map[string]any), raw JSON ([]byte, json.RawMessage), or
// any value that marshals to JSON (including model.UiSpec).
func Validate(candidate any) (model.UiSpec, error) {
	tree, err := toTree(candidate)
	if err != nil {
		return model.UiSpec{}, &ValidationError{Issues: []SchemaIssue{{Message: err.Error()}}}
	}

	v := &validator{}
	spec := v.document(tree)
	if !v.issues.empty() {
		return model.UiSpec{}, &ValidationError{Issues: v.issues.issues}
	}
	return spec, nil
}

// ValidateJSON validates raw candidate text and reports the outcome.
func ValidateJSON(raw []byte) (model.UiSpec, SchemaValidationResult) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return model.UiSpec{}, SchemaValidationResult{
			Issues: []SchemaIssue{{Message: fmt.Sprintf("malformed JSON: %v", err)}},
		}
	}
	spec, err := Validate(tree)
	if err != nil {
		return model.UiSpec{}, SchemaValidationResult{Issues: IssuesOf(err)}
	}
	return spec, SchemaValidationResult{Valid: true}
}

// IssuesOf extracts the issues carried by a ValidationError, or wraps any
// other error as a single root issue.
func IssuesOf(err error) []SchemaIssue {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*ValidationError); ok {
		return append([]SchemaIssue(nil), verr.Issues...)
	}
	return []SchemaIssue{{Message: err.Error()}}
}

func toTree(candidate any) (any, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return typed, nil
	case []byte:
		return decodeTree(typed)
	case json.RawMessage:
		return decodeTree(typed)
	default:
		data, err := json.Marshal(candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate is not JSON encodable: %v", err)
		}
		return decodeTree(data)
	}
}

func decodeTree(data []byte) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}
	return tree, nil
}

type validator struct {
	issues issueList
}

func (v *validator) document(tree any) model.UiSpec {
	root, ok := tree.(map[string]any)
	if !ok {
		v.issues.add("", "document must be an object, found %s", describe(tree))
		return model.UiSpec{}
	}

	spec := model.UiSpec{Style: model.DefaultStyle()}
	spec.Layout = v.layout(root)
	v.style(root)

	raw, present := root["components"]
	if !present || raw == nil {
		v.issues.add("components", "is required")
		return spec
	}
	list, ok := raw.([]any)
	if !ok {
		v.issues.add("components", "must be an array, found %s", describe(raw))
		return spec
	}
	if len(list) == 0 {
		v.issues.add("components", "must contain at least 1 node")
		return spec
	}

	spec.Components = make([]model.Node, 0, len(list))
	for idx, item := range list {
		node, ok := v.node(index("components", idx), item, 1)
		if ok {
			spec.Components = append(spec.Components, node)
		}
	}
	if first, ok := list[0].(map[string]any); ok {
		if kind, _ := first["kind"].(string); kind != "" && kind != string(model.KindStage) {
			v.issues.add("components[0].kind", "root node must be %s, found %q", model.KindStage, kind)
		}
	}
	return spec
}

func (v *validator) layout(root map[string]any) model.Layout {
	raw, present := root["layout"]
	if !present || raw == nil {
		v.issues.add("layout", "is required")
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		v.issues.add("layout", "must be a string, found %s", describe(raw))
		return ""
	}
	layout := model.Layout(value)
	if !layout.Valid() {
		v.issues.add("layout", "must be one of %s, found %q", quoteLayouts(), value)
		return ""
	}
	return layout
}

func (v *validator) style(root map[string]any) {
	raw, present := root["style"]
	if !present || raw == nil {
		return
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		v.issues.add("style", "must be an object, found %s", describe(raw))
		return
	}
	want := model.DefaultStyle()
	if value, _ := payload["bg"].(string); value != want.Background {
		v.issues.add("style.bg", "must be %q", want.Background)
	}
	if value, _ := payload["radius"].(string); value != want.Radius {
		v.issues.add("style.radius", "must be %q", want.Radius)
	}
}

func (v *validator) node(path string, raw any, depth int) (model.Node, bool) {
	payload, ok := raw.(map[string]any)
	if !ok {
		v.issues.add(path, "node must be an object, found %s", describe(raw))
		return model.Node{}, false
	}
	if depth > MaxDepth {
		v.issues.add(path, "nesting exceeds %d levels", MaxDepth)
		return model.Node{}, false
	}

	before := len(v.issues.issues)
	var node model.Node

	kindRaw, present := payload["kind"]
	kind, isString := kindRaw.(string)
	switch {
	case !present || kindRaw == nil:
		v.issues.add(field(path, "kind"), "is required")
	case !isString:
		v.issues.add(field(path, "kind"), "must be a string, found %s", describe(kindRaw))
	case !model.NodeKind(kind).Valid():
		v.issues.add(field(path, "kind"), "must be one of %s, found %q", quoteKinds(), kind)
	default:
		node.Kind = model.NodeKind(kind)
	}

	if propsRaw, present := payload["props"]; present && propsRaw != nil {
		props, ok := propsRaw.(map[string]any)
		if !ok {
			v.issues.add(field(path, "props"), "must be an object, found %s", describe(propsRaw))
		} else {
			node.Props = props
		}
	}

	if slotsRaw, present := payload["slots"]; present && slotsRaw != nil {
		list, ok := slotsRaw.([]any)
		if !ok {
			v.issues.add(field(path, "slots"), "must be an array, found %s", describe(slotsRaw))
		} else {
			node.Slots = make([]model.Slot, 0, len(list))
			for idx, item := range list {
				if slot, ok := v.slot(index(field(path, "slots"), idx), item); ok {
					node.Slots = append(node.Slots, slot)
				}
			}
		}
	}

	if childrenRaw, present := payload["children"]; present && childrenRaw != nil {
		list, ok := childrenRaw.([]any)
		if !ok {
			v.issues.add(field(path, "children"), "must be an array, found %s", describe(childrenRaw))
		} else {
			node.Children = make([]model.Node, 0, len(list))
			for idx, item := range list {
				if child, ok := v.node(index(field(path, "children"), idx), item, depth+1); ok {
					node.Children = append(node.Children, child)
				}
			}
		}
	}

	return node, len(v.issues.issues) == before
}

func (v *validator) slot(path string, raw any) (model.Slot, bool) {
	payload, ok := raw.(map[string]any)
	if !ok {
		v.issues.add(path, "slot must be an object, found %s", describe(raw))
		return model.Slot{}, false
	}

	before := len(v.issues.issues)
	discriminator, _ := payload["slot"].(string)
	kind := model.SlotKind(discriminator)

	switch kind {
	case model.SlotTitle:
		text := v.requiredText(path, payload, "text", model.MaxTitleLength)
		return model.TitleSlot(text), len(v.issues.issues) == before
	case model.SlotBody:
		text := v.requiredText(path, payload, "text", model.MaxBodyLength)
		return model.BodySlot(text), len(v.issues.issues) == before
	case model.SlotCTA:
		label := v.requiredText(path, payload, "label", model.MaxCTALabelLength)
		action := v.optionalText(path, payload, "action", model.MaxCTAActionLength)
		return model.CTASlot(label, action), len(v.issues.issues) == before
	case model.SlotMedia:
		slot := model.Slot{Slot: model.SlotMedia, Kind: model.MediaPlaceholder}
		if kindRaw, present := payload["kind"]; present && kindRaw != nil {
			value, ok := kindRaw.(string)
			switch {
			case !ok:
				v.issues.add(field(path, "kind"), "must be a string, found %s", describe(kindRaw))
			case !model.MediaKind(value).Valid():
				v.issues.add(field(path, "kind"), "must be one of [%q %q], found %q", model.MediaPlaceholder, model.MediaImage, value)
			default:
				slot.Kind = model.MediaKind(value)
			}
		}
		if idRaw, present := payload["id"]; present && idRaw != nil {
			value, ok := idRaw.(string)
			if !ok {
				v.issues.add(field(path, "id"), "must be a string, found %s", describe(idRaw))
			} else {
				slot.ID = value
			}
		}
		return slot, len(v.issues.issues) == before
	default:
		if _, present := payload["slot"]; !present {
			v.issues.add(field(path, "slot"), "is required")
		} else {
			v.issues.add(field(path, "slot"), "must be one of [\"title\" \"body\" \"cta\" \"media\"], found %s", describe(payload["slot"]))
		}
		return model.Slot{}, false
	}
}

func (v *validator) requiredText(path string, payload map[string]any, key string, limit int) string {
	raw, present := payload[key]
	if !present || raw == nil {
		v.issues.add(field(path, key), "is required")
		return ""
	}
	return v.text(field(path, key), raw, limit)
}

func (v *validator) optionalText(path string, payload map[string]any, key string, limit int) string {
	raw, present := payload[key]
	if !present || raw == nil {
		return ""
	}
	return v.text(field(path, key), raw, limit)
}

func (v *validator) text(path string, raw any, limit int) string {
	value, ok := raw.(string)
	if !ok {
		v.issues.add(path, "must be a string, found %s", describe(raw))
		return ""
	}
	if n := utf8.RuneCountInString(value); n > limit {
		v.issues.add(path, "exceeds %d chars (%d)", limit, n)
	}
	return value
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func quoteLayouts() string {
	layouts := model.Layouts()
	parts := make([]string, len(layouts))
	for idx, layout := range layouts {
		parts[idx] = fmt.Sprintf("%q", layout)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func quoteKinds() string {
	kinds := model.NodeKinds()
	parts := make([]string, len(kinds))
	for idx, kind := range kinds {
		parts[idx] = fmt.Sprintf("%q", kind)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
