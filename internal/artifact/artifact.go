// Package artifact defines the value types that identify the data products
// consumed and produced by analysis scripts: a Ref names a location contract
// (category directory plus file name template), never file content.
package artifact

import (
	"fmt"
	"strings"
)

// BuildingPlaceholder is the template token expanded once per building
// instance when a concrete path is resolved. Graph construction and
// rendering keep it verbatim: the artifact identity is the template, not
// any single expansion of it.
const BuildingPlaceholder = "{BUILDING}"

// Ref identifies one logical artifact. Refs are immutable values and are
// compared by (Category, Name); Kind is descriptive metadata and does not
// participate in identity.
type Ref struct {
	// Category is the slash-separated directory namespace the artifact
	// lives under, e.g. "inputs/building-geometry".
	Category string
	// Name is the file name template. It may contain BuildingPlaceholder
	// for artifact families materialized per building.
	Name string
	// Kind classifies the artifact's payload format.
	Kind Kind
}

// Key returns the canonical identity string, Category joined to Name.
// Keys are the map keys used by the graph, the catalogs, and target lookup.
func (r Ref) Key() string {
	return r.Category + "/" + r.Name
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	return r.Key()
}

// Templated reports whether the name expands per building.
func (r Ref) Templated() bool {
	return strings.Contains(r.Name, BuildingPlaceholder)
}

// Less orders Refs by category, then name. This is the stable secondary
// sort used by every downstream iteration surface.
func (r Ref) Less(other Ref) bool {
	if r.Category != other.Category {
		return r.Category < other.Category
	}
	return r.Name < other.Name
}

// ParseKey splits a canonical key back into a Ref. The final path segment
// becomes the name, everything before it the category. Kind is not encoded
// in keys and is left zero.
func ParseKey(key string) (Ref, error) {
	if key == "" {
		return Ref{}, fmt.Errorf("artifact key cannot be empty")
	}
	idx := strings.LastIndex(key, "/")
	if idx <= 0 || idx == len(key)-1 {
		return Ref{}, fmt.Errorf("invalid artifact key %q: want category/name", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" {
			return Ref{}, fmt.Errorf("invalid artifact key %q: empty path segment", key)
		}
	}
	return Ref{Category: key[:idx], Name: key[idx+1:]}, nil
}
