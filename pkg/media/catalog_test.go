package media

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogLoadsEmbeddedEntries(t *testing.T) {
	catalog := Default()
	want := []string{"fold-flip-combo", "monitor-paradigm", "watch-ultra", "watch8-combo", "s24-fe-banner", "tab-s10-hero"}
	if diff := cmp.Diff(want, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if catalog.URL("watch-ultra") == "" {
		t.Fatalf("expected watch-ultra to resolve")
	}
	if catalog.URL("nonexistent-id") != "" {
		t.Fatalf("expected unknown id to resolve to empty url")
	}
}

func TestLoadFSMergesJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"entries":[{"id":"alpha-one","url":"https://cdn.example.com/a.jpg"}]}`)},
		"b.yaml": {Data: []byte("entries:\n  - id: beta-two\n    url: https://cdn.example.com/b.jpg\n    tags: [beta, ' ']\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	catalog, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Entry{
		{ID: "alpha-one", URL: "https://cdn.example.com/a.jpg"},
		{ID: "beta-two", URL: "https://cdn.example.com/b.jpg", Tags: []string{"beta"}},
	}
	if diff := cmp.Diff(want, catalog.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSRejectsDuplicatesAndBadURLs(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate": {
			"a.yaml": {Data: []byte("entries:\n  - {id: x-ray, url: 'https://a.example/x.jpg'}\n  - {id: x-ray, url: 'https://a.example/y.jpg'}\n")},
		},
		"relative url": {
			"a.yaml": {Data: []byte("entries:\n  - {id: x-ray, url: '/x.jpg'}\n")},
		},
		"javascript url": {
			"a.yaml": {Data: []byte("entries:\n  - {id: x-ray, url: 'javascript:alert(1)'}\n")},
		},
		"empty file": {
			"a.json": {Data: []byte("  ")},
		},
	}
	for name, fsys := range cases {
		if _, err := LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFSNil(t *testing.T) {
	catalog, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestRankUsesDeclarationOrderOnTies(t *testing.T) {
	catalog := MustCatalog(
		Entry{ID: "watch-ultra", URL: "https://a.example/1.jpg"},
		Entry{ID: "tab-hero", URL: "https://a.example/2.jpg"},
		Entry{ID: "watch-combo", URL: "https://a.example/3.jpg"},
	)
	ranked := catalog.Rank("new watch launch")
	got := make([]string, len(ranked))
	for idx, r := range ranked {
		got[idx] = r.Entry.ID
	}
	if diff := cmp.Diff([]string{"watch-ultra", "watch-combo", "tab-hero"}, got); diff != "" {
		t.Fatalf("rank order mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryDescription(t *testing.T) {
	if got := (Entry{ID: "watch8-combo"}).Description(); got != "Watch8 Combo" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var catalog *Catalog
	if catalog.Has("x") || catalog.URL("x") != "" || catalog.Len() != 0 {
		t.Fatalf("nil catalog should behave as empty")
	}
}

func TestLoadFileReadsSingleCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.yaml")
	data := "entries:\n  - id: gamma-three\n    url: https://cdn.example.com/g.jpg\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	catalog, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff([]string{"gamma-three"}, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
