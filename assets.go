package uispec

import (
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// StylesAssetsFS exposes the stylesheet used by the HTML renderer.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(uispec.StylesAssetsFS()),
//	  ),
//	)
func StylesAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// LoadCatalog loads the media catalog at path: a directory of JSON/YAML
// files, a single file, or the embedded catalog when path is empty.
func LoadCatalog(path string) (*media.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return media.Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return media.LoadFS(os.DirFS(path))
	}
	return media.LoadFile(path)
}
