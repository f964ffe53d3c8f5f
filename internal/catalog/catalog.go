// Package catalog loads the externally-supplied and published artifact
// catalogs. Graph validation consults them to decide which unproduced
// inputs and unconsumed outputs are expected rather than findings.
package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uesim/tracegraph/internal/artifact"
)

// Entry names one artifact in a catalog list.
type Entry struct {
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
}

// document mirrors the on-disk YAML layout. Both lists are optional.
type document struct {
	External  []Entry `yaml:"external"`
	Published []Entry `yaml:"published"`
}

// Catalog answers membership queries for the two advisory lists.
type Catalog struct {
	external  map[string]struct{}
	published map[string]struct{}
}

// Empty returns a catalog with no entries.
func Empty() *Catalog {
	return New(nil, nil)
}

// New builds a catalog from explicit artifact lists.
func New(external, published []artifact.Ref) *Catalog {
	c := &Catalog{
		external:  make(map[string]struct{}, len(external)),
		published: make(map[string]struct{}, len(published)),
	}
	for _, ref := range external {
		c.external[ref.Key()] = struct{}{}
	}
	for _, ref := range published {
		c.published[ref.Key()] = struct{}{}
	}
	return c
}

// IsExternal reports whether the artifact is declared externally supplied.
func (c *Catalog) IsExternal(ref artifact.Ref) bool {
	_, ok := c.external[ref.Key()]
	return ok
}

// IsPublished reports whether the artifact is a declared final output.
func (c *Catalog) IsPublished(ref artifact.Ref) bool {
	_, ok := c.published[ref.Key()]
	return ok
}

// NumExternal returns the number of external entries.
func (c *Catalog) NumExternal() int {
	return len(c.external)
}

// NumPublished returns the number of published entries.
func (c *Catalog) NumPublished() int {
	return len(c.published)
}

// Parse decodes a catalog from YAML bytes. An empty payload yields an empty
// catalog.
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Empty(), nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	external, err := toRefs("external", doc.External)
	if err != nil {
		return nil, err
	}
	published, err := toRefs("published", doc.Published)
	if err != nil {
		return nil, err
	}
	return New(external, published), nil
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func toRefs(list string, entries []Entry) ([]artifact.Ref, error) {
	refs := make([]artifact.Ref, 0, len(entries))
	for i, e := range entries {
		if e.Category == "" || e.Name == "" {
			return nil, fmt.Errorf("catalog entry %s[%d]: category and name are required", list, i)
		}
		refs = append(refs, artifact.Ref{Category: e.Category, Name: e.Name})
	}
	return refs, nil
}
