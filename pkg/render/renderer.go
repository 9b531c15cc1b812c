// Package render defines the presentation seam: renderers turn a validated
// document into bytes (HTML fragments, JSON trees) and are discovered by name
// through a Registry.
package render

import (
	"context"

	"github.com/goliatone/go-uispec/pkg/model"
)

// Renderer converts a validated UiSpec into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, spec model.UiSpec, options RenderOptions) ([]byte, error)
}
