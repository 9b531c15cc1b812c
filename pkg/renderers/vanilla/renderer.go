// Package vanilla renders documents as static HTML with no client runtime.
// Each visual element maps to one template under templates/; the renderer
// walks the tree in Go and hands child markup to the parent template.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/render"
	rendertemplate "github.com/goliatone/go-uispec/pkg/render/template"
	gotemplate "github.com/goliatone/go-uispec/pkg/render/template/gotemplate"
	"github.com/goliatone/go-uispec/pkg/visual"
)

const (
	// Name identifies the fragment renderer.
	Name = "vanilla"
	// PageName identifies the renderer configured with WithStandalonePage.
	PageName = "vanilla-page"

	defaultPageTitle = "UiSpec preview"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	standalone       bool
	stylesheetHref   string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStandalonePage wraps the fragment in a complete HTML document carrying
// the stylesheet and theme variables.
func WithStandalonePage(enabled bool) Option {
	return func(cfg *config) {
		cfg.standalone = enabled
	}
}

// WithStylesheetHref links the stylesheet from href instead of inlining it.
// The href is resolved through the theme's asset resolver at render time.
func WithStylesheetHref(href string) Option {
	return func(cfg *config) {
		cfg.stylesheetHref = strings.TrimSpace(href)
	}
}

type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	standalone     bool
	stylesheetHref string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:      renderer,
		standalone:     cfg.standalone,
		stylesheetHref: cfg.stylesheetHref,
	}, nil
}

func (r *Renderer) Name() string {
	if r.standalone {
		return PageName
	}
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces an HTML fragment, or a full page when the renderer was
// built with WithStandalonePage.
func (r *Renderer) Render(ctx context.Context, spec model.UiSpec, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := visual.Render(spec, options.MediaCatalog())
	children, err := r.elements(tree.Elements)
	if err != nil {
		return nil, err
	}
	fragment, err := r.templates.RenderTemplate("templates/document", map[string]any{
		"layout":   string(tree.Layout),
		"children": children,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render document: %w", err)
	}
	fragment = sanitizeFragment(fragment)

	if !r.standalone {
		return []byte(fragment), nil
	}
	return r.page(spec, fragment, options)
}

func (r *Renderer) page(spec model.UiSpec, fragment string, options render.RenderOptions) ([]byte, error) {
	data := map[string]any{
		"title":    pageTitle(spec),
		"fragment": fragment,
		"theme":    render.ThemeFor(options.Theme),
	}
	if r.stylesheetHref != "" {
		data["stylesheet_href"] = render.AssetURL(options.Theme, r.stylesheetHref)
	} else {
		data["stylesheet"] = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate("templates/page", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) elements(elements []visual.Element) (string, error) {
	var builder strings.Builder
	for _, el := range elements {
		html, err := r.element(el)
		if err != nil {
			return "", err
		}
		builder.WriteString(html)
	}
	return builder.String(), nil
}

func (r *Renderer) element(el visual.Element) (string, error) {
	data := map[string]any{
		"text":        el.Text,
		"action":      el.Action,
		"src":         el.Src,
		"size":        el.Size,
		"variant":     el.Variant,
		"muted":       el.Muted,
		"padded":      el.Padded,
		"full_height": el.FullHeight,
	}

	if el.Kind == visual.KindCard && el.FullHeight {
		regions := map[visual.Region][]visual.Element{}
		for _, child := range el.Children {
			regions[child.Region] = append(regions[child.Region], child)
		}
		for _, region := range []visual.Region{visual.RegionMedia, visual.RegionText, visual.RegionCTA} {
			html, err := r.elements(regions[region])
			if err != nil {
				return "", err
			}
			data[string(region)] = html
		}
	} else {
		children, err := r.elements(el.Children)
		if err != nil {
			return "", err
		}
		data["children"] = children
	}

	html, err := r.templates.RenderTemplate("templates/"+string(el.Kind), data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render %s: %w", el.Kind, err)
	}
	return html, nil
}

// pageTitle uses the first card title so previews are distinguishable in a
// browser tab.
func pageTitle(spec model.UiSpec) string {
	for _, card := range spec.Cards() {
		if title := model.CardTitle(card); title != "" {
			return title
		}
	}
	return defaultPageTitle
}
