package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/render"
	"github.com/goliatone/go-uispec/pkg/renderers/vanilla"
)

func testCatalog(t *testing.T) *media.Catalog {
	t.Helper()
	catalog, err := media.NewCatalog(media.Entry{ID: "watch-ultra", URL: "https://cdn.example.com/watch.jpg"})
	require.NoError(t, err)
	return catalog
}

func heroSpec(title string) model.UiSpec {
	return model.UiSpec{
		Layout: model.LayoutOneCardCTA,
		Style:  model.DefaultStyle(),
		Components: []model.Node{{
			Kind: model.KindStage,
			Children: []model.Node{{
				Kind: model.KindCard,
				Slots: []model.Slot{
					model.MediaSlot(model.MediaImage, "watch-ultra"),
					model.TitleSlot(title),
					model.BodySlot("Built for the long run"),
					model.CTASlot("Shop now", "buy"),
				},
			}},
		}},
	}
}

func gridSpec() model.UiSpec {
	card := func(title string) model.Node {
		return model.Node{
			Kind:  model.KindCard,
			Props: map[string]any{"variant": "list"},
			Children: []model.Node{
				{Kind: model.KindMedia, Props: map[string]any{"kind": "placeholder"}},
				{Kind: model.KindHeading, Slots: []model.Slot{model.TitleSlot(title)}},
				{Kind: model.KindText, Props: map[string]any{"muted": true}, Slots: []model.Slot{model.BodySlot("Details")}},
			},
		}
	}
	return model.UiSpec{
		Layout: model.LayoutFourCardsCTA,
		Style:  model.DefaultStyle(),
		Components: []model.Node{{
			Kind: model.KindStage,
			Children: []model.Node{{
				Kind:     model.KindGrid,
				Children: []model.Node{card("One"), card("Two"), card("Three"), card("Four")},
			}},
		}},
	}
}

func TestRenderer_HeroFragment(t *testing.T) {
	renderer, err := vanilla.New()
	require.NoError(t, err)
	assert.Equal(t, vanilla.Name, renderer.Name())
	assert.Equal(t, "text/html; charset=utf-8", renderer.ContentType())

	out, err := renderer.Render(context.Background(), heroSpec("Ultra watch"), render.RenderOptions{Catalog: testCatalog(t)})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `data-layout="one-card-cta"`)
	assert.Contains(t, html, "uispec-card--full")
	assert.Contains(t, html, `src="https://cdn.example.com/watch.jpg"`)
	assert.Contains(t, html, ">Ultra watch</h3>")
	assert.Contains(t, html, ">Built for the long run</p>")
	assert.Contains(t, html, `data-action="buy"`)
	assert.Contains(t, html, ">Shop now</button>")
	assert.NotContains(t, html, "uispec-frame--padded")
	assert.NotContains(t, html, "<html")

	media := strings.Index(html, "uispec-card__media")
	text := strings.Index(html, "uispec-card__text")
	cta := strings.Index(html, "uispec-card__cta")
	require.True(t, media >= 0 && text >= 0 && cta >= 0, html)
	assert.True(t, media < text && text < cta, "regions out of order:\n%s", html)
}

func TestRenderer_GridFragment(t *testing.T) {
	renderer, err := vanilla.New()
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), gridSpec(), render.RenderOptions{})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "uispec-frame uispec-frame--padded")
	assert.Contains(t, html, `class="uispec-grid"`)
	assert.Equal(t, 4, strings.Count(html, "uispec-card uispec-card--list"))
	assert.Equal(t, 4, strings.Count(html, "uispec-media--placeholder"))
	assert.Equal(t, 4, strings.Count(html, "uispec-text uispec-text--muted"))
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<button")
}

func TestRenderer_EscapesDocumentText(t *testing.T) {
	renderer, err := vanilla.New()
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), heroSpec("<script>alert(1)</script>"), render.RenderOptions{})
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderer_UnknownImagesRenderAsPlaceholder(t *testing.T) {
	renderer, err := vanilla.New()
	require.NoError(t, err)

	catalog, err := media.NewCatalog(media.Entry{ID: "other", URL: "https://cdn.example.com/other.jpg"})
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), heroSpec("Ultra watch"), render.RenderOptions{Catalog: catalog})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<img")
	assert.Contains(t, string(out), "uispec-media--placeholder")
}

func TestRenderer_StandalonePageInlinesStylesAndTheme(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithStandalonePage(true))
	require.NoError(t, err)
	assert.Equal(t, vanilla.PageName, renderer.Name())

	out, err := renderer.Render(context.Background(), heroSpec("Ultra watch"), render.RenderOptions{
		Catalog: testCatalog(t),
		Theme: &theme.RendererConfig{
			Theme:   "aurora",
			Variant: "dark",
			CSSVars: map[string]string{"--uispec-bg": "#000000", "--accent": "#ff0066"},
		},
	})
	require.NoError(t, err)
	html := string(out)

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Ultra watch</title>")
	assert.Contains(t, html, ".uispec-frame {")
	assert.Contains(t, html, "--accent: #ff0066;")
	assert.Contains(t, html, "--uispec-bg: #FFFFFF;")
	assert.NotContains(t, html, "--uispec-bg: #000000;")
	assert.Contains(t, html, `data-theme="aurora"`)
	assert.Contains(t, html, `data-theme-variant="dark"`)
	assert.Contains(t, html, ">Shop now</button>")
}

func TestRenderer_StandalonePageLinksStylesheet(t *testing.T) {
	renderer, err := vanilla.New(
		vanilla.WithStandalonePage(true),
		vanilla.WithStylesheetHref("assets/"+vanilla.StylesheetName),
	)
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), heroSpec("Ultra watch"), render.RenderOptions{
		Theme: &theme.RendererConfig{
			AssetURL: func(path string) string { return "/static/" + path },
		},
	})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `href="/static/assets/uispec-vanilla.css"`)
	assert.NotContains(t, html, ".uispec-frame {")
}

func TestRenderer_CustomTemplatesAreSanitized(t *testing.T) {
	files := fstest.MapFS{}
	for _, kind := range []string{"frame", "grid", "card", "media", "heading", "text", "button"} {
		files["templates/"+kind+".tmpl"] = &fstest.MapFile{Data: []byte(`<div class="custom-{{ text }}">{{ children|safe }}</div>`)}
	}
	files["templates/document.tmpl"] = &fstest.MapFile{
		Data: []byte(`<div onclick="steal()">{{ children|safe }}<script>steal()</script></div>`),
	}

	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), gridSpec(), render.RenderOptions{})
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "onclick")
	assert.NotContains(t, html, "<script")
	assert.Contains(t, html, "custom-")
}

func TestRenderer_HonoursCancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = renderer.Render(ctx, heroSpec("Ultra watch"), render.RenderOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAssetsFS_ServesStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--uispec-radius")
}
