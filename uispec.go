// Package uispec is the convenience surface of the module: build a valid
// document from untrusted candidate text and render it without wiring the
// individual packages by hand.
package uispec

import (
	"context"
	"fmt"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/orchestrator"
	"github.com/goliatone/go-uispec/pkg/render"
	"github.com/goliatone/go-uispec/pkg/renderers/jsontree"
	"github.com/goliatone/go-uispec/pkg/renderers/vanilla"
)

// UiSpec aliases the validated document type.
type UiSpec = model.UiSpec

// Intent aliases the normalized brief consumed by the pipeline.
type Intent = intent.Intent

// Report aliases the pipeline diagnostics.
type Report = orchestrator.Report

// RenderOptions describes per-request data renderers can use.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the pipeline constructor from the top-level module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// BuildDocument turns raw candidate text into a valid document, falling back
// to the intent-derived document when the candidate cannot be used.
func BuildDocument(raw string, in Intent, options ...orchestrator.Option) UiSpec {
	return orchestrator.New(options...).Build(raw, in)
}

// NewRegistry returns a registry holding the built-in renderers: the HTML
// fragment renderer, its standalone page variant, and the JSON tree.
func NewRegistry(options ...vanilla.Option) (*render.Registry, error) {
	fragment, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	page, err := vanilla.New(append(append([]vanilla.Option(nil), options...), vanilla.WithStandalonePage(true))...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(fragment, page, jsontree.New())
}

// RenderHTML renders spec as an HTML fragment with the built-in templates.
func RenderHTML(ctx context.Context, spec UiSpec, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, spec, options)
}

// Render renders spec with the named built-in renderer and reports the
// content type of the output. An empty name selects the HTML fragment.
func Render(ctx context.Context, spec UiSpec, rendererName string, options RenderOptions) ([]byte, string, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, "", err
	}
	renderer, err := registry.Resolve(rendererName, vanilla.Name)
	if err != nil {
		return nil, "", fmt.Errorf("uispec: %w", err)
	}
	out, err := renderer.Render(ctx, spec, options)
	if err != nil {
		return nil, "", err
	}
	return out, renderer.ContentType(), nil
}
