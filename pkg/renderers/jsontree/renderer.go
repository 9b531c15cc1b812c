// Package jsontree serializes the visual tree for client-side presentation
// layers that draw the primitives themselves.
package jsontree

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/render"
	"github.com/goliatone/go-uispec/pkg/visual"
)

// Name identifies the renderer inside the registry.
const Name = "json"

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithIndent pretty-prints the payload using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithDocument includes the validated document next to the visual tree.
func WithDocument(enabled bool) Option {
	return func(r *Renderer) {
		r.includeDocument = enabled
	}
}

// Payload is the serialized form produced by Render.
type Payload struct {
	Tree     visual.Tree         `json:"tree"`
	Theme    render.ThemeContext `json:"theme"`
	Document *model.UiSpec       `json:"document,omitempty"`
}

// Renderer turns a UiSpec into a JSON visual tree.
type Renderer struct {
	indent          string
	includeDocument bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a JSON tree renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return Name
}

// ContentType returns the MIME type for generated payloads.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render builds the visual tree and encodes it together with the theme.
func (r *Renderer) Render(ctx context.Context, spec model.UiSpec, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := Payload{
		Tree:  visual.Render(spec, options.MediaCatalog()),
		Theme: render.ThemeFor(options.Theme),
	}
	if r.includeDocument {
		doc := spec.Clone()
		payload.Document = &doc
	}

	var (
		data []byte
		err  error
	)
	if r.indent != "" {
		data, err = json.MarshalIndent(payload, "", r.indent)
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("jsontree renderer: marshal payload: %w", err)
	}
	return data, nil
}
