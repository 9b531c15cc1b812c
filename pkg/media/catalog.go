package media

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Entry is one catalog item.
type Entry struct {
	ID   string   `json:"id" yaml:"id"`
	URL  string   `json:"url" yaml:"url"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Description renders the id as words ("watch8-combo" -> "Watch8 Combo").
func (e Entry) Description() string {
	words := strings.FieldsFunc(e.ID, func(r rune) bool { return r == '-' || r == '_' })
	for idx, word := range words {
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Catalog is an immutable mapping of media ids to locations. The zero value
// is an empty catalog; a nil *Catalog behaves the same.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog validates and indexes the entries in declaration order.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for idx, entry := range entries {
		if err := c.add(entry); err != nil {
			return nil, fmt.Errorf("media: entry %d: %w", idx, err)
		}
	}
	return c, nil
}

// MustCatalog is NewCatalog that panics on invalid input. Useful in tests and
// init-time wiring.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) add(entry Entry) error {
	id := strings.TrimSpace(entry.ID)
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if _, exists := c.index[id]; exists {
		return fmt.Errorf("duplicate id %q", id)
	}
	location := strings.TrimSpace(entry.URL)
	parsed, err := url.Parse(location)
	if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fmt.Errorf("id %q: url %q must be an absolute http(s) url", id, entry.URL)
	}

	tags := make([]string, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	c.index[id] = len(c.entries)
	c.entries = append(c.entries, Entry{ID: id, URL: location, Tags: tags})
	return nil
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	idx, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Has reports whether id is a catalog key.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// URL resolves id to its location, or "" when the id is unknown. It never
// touches the document being rendered.
func (c *Catalog) URL(id string) string {
	entry, ok := c.Lookup(id)
	if !ok {
		return ""
	}
	return entry.URL
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	for idx, entry := range c.entries {
		entry.Tags = append([]string(nil), entry.Tags...)
		out[idx] = entry
	}
	return out
}

// IDs returns the catalog keys in declaration order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.entries))
	for idx, entry := range c.entries {
		ids[idx] = entry.ID
	}
	return ids
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Ranked pairs a catalog entry with its relevance score.
type Ranked struct {
	Entry Entry
	Score int
}

// Rank scores every entry against the corpus and orders them by descending
// score. Equal scores keep declaration order.
func (c *Catalog) Rank(corpus string) []Ranked {
	if c == nil {
		return nil
	}
	tokens := NewTokenSet(corpus)
	out := make([]Ranked, len(c.entries))
	for idx, entry := range c.entries {
		out[idx] = Ranked{Entry: entry, Score: tokens.Score(entry.ID)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
