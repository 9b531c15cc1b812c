package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the document.
type RenderOptions struct {
	// Catalog resolves media ids to URLs. Nil uses the embedded catalog.
	Catalog *media.Catalog
	// Theme carries design tokens and CSS variables. The document style
	// literal always wins for background and radius.
	Theme *theme.RendererConfig
}

// MediaCatalog returns the catalog renderers should resolve media against.
func (o RenderOptions) MediaCatalog() *media.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return media.Default()
}

// ThemeContext is the flattened theme data exposed to templates.
type ThemeContext struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
}

// ThemeFor merges cfg with the fixed style literal. The literal is written
// last so a theme can never restyle the document frame.
func ThemeFor(cfg *theme.RendererConfig) ThemeContext {
	style := model.DefaultStyle()
	ctx := ThemeContext{
		Tokens:  map[string]string{},
		CSSVars: map[string]string{},
	}
	if cfg != nil {
		ctx.Name = cfg.Theme
		ctx.Variant = cfg.Variant
		for key, value := range cfg.Tokens {
			ctx.Tokens[key] = value
		}
		for key, value := range cfg.CSSVars {
			ctx.CSSVars[key] = value
		}
	}
	ctx.Tokens["bg"] = style.Background
	ctx.Tokens["radius"] = style.Radius
	ctx.CSSVars["--uispec-bg"] = style.Background
	ctx.CSSVars["--uispec-radius"] = radiusValue(style.Radius)
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

// AssetURL resolves a stylesheet or script path through the theme, returning
// path unchanged when the theme has no resolver.
func AssetURL(cfg *theme.RendererConfig, path string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return path
	}
	if resolved := cfg.AssetURL(path); resolved != "" {
		return resolved
	}
	return path
}

func radiusValue(token string) string {
	switch token {
	case "sm":
		return "6px"
	case "lg":
		return "12px"
	default:
		return "0"
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(":root {\n")
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") || strings.ContainsAny(name, ";{}<>") {
			continue
		}
		value := strings.TrimSpace(vars[key])
		if strings.ContainsAny(value, ";{}<>") {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString(";\n")
	}
	builder.WriteString("}")
	return builder.String()
}
