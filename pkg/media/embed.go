package media

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed catalog/*
var embeddedCatalog embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// EmbeddedFS returns the bundled catalog files. Pass it to LoadFS to build the
// reference catalog.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the catalog built from the embedded files. It is loaded
// once per process and never mutated afterwards.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}
