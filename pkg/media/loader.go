package media

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// LoadFS walks fsys and merges every JSON/YAML catalog file in lexical path
// order. A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog, _ := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("media: read %s: %w", path, err)
		}
		doc, err := parseCatalogFile(data, path)
		if err != nil {
			return err
		}
		for idx, item := range doc.Entries {
			if err := catalog.add(item); err != nil {
				return fmt.Errorf("media: file %s entry %d: %w", path, idx, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFile reads a single JSON or YAML catalog file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("media: read %s: %w", path, err)
	}
	doc, err := parseCatalogFile(data, path)
	if err != nil {
		return nil, err
	}
	catalog, err := NewCatalog(doc.Entries...)
	if err != nil {
		return nil, fmt.Errorf("media: file %s: %w", path, err)
	}
	return catalog, nil
}

func parseCatalogFile(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("media: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = catalogFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return catalogFile{}, fmt.Errorf("media: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
