// Package catalog holds the posting catalog: an ordered, read-only
// collection of job postings supplied by the surrounding application.
// Postings are loaded once per session and never mutated or deleted.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"jt-go/internal/model"
)

// Catalog is an immutable, ordered collection of postings with an
// identifier index.
type Catalog struct {
	postings []model.Posting
	byID     map[string]model.Posting
}

// New builds a Catalog from the given postings, preserving their order.
// If two postings share an identifier, the later one wins the index.
func New(postings []model.Posting) *Catalog {
	c := &Catalog{
		postings: make([]model.Posting, len(postings)),
		byID:     make(map[string]model.Posting, len(postings)),
	}
	copy(c.postings, postings)
	for _, p := range c.postings {
		c.byID[p.ID] = p
	}
	return c
}

// LoadFile reads a JSON array of postings from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var postings []model.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("parsing catalog from %s: %w", path, err)
	}
	return New(postings), nil
}

// All returns the postings in catalog order. The returned slice is a
// copy; callers may reorder it freely.
func (c *Catalog) All() []model.Posting {
	out := make([]model.Posting, len(c.postings))
	copy(out, c.postings)
	return out
}

// ByID returns the posting with the given identifier.
func (c *Catalog) ByID(id string) (model.Posting, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of postings in the catalog.
func (c *Catalog) Len() int { return len(c.postings) }
