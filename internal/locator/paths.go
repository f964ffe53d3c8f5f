package locator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/golang-lru/v2"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/fsutil"
)

// DefaultCacheSize bounds each locator's path expansion cache.
const DefaultCacheSize = 4096

// pathKey identifies one memoized expansion.
type pathKey struct {
	accessor string
	building string
}

// PathLocator is the real Locator implementation, resolving accessors to
// paths under one scenario root. Resolution is pure path computation with
// one exception: write accessors ensure the artifact's parent directory
// exists, the only disk side effect in the subsystem. Expansions are
// memoized through an LRU cache, safe for concurrent use.
type PathLocator struct {
	registry *Registry
	root     string
	cache    *lru.Cache[pathKey, string]
}

// Locator returns a PathLocator rooted at the scenario directory, with the
// default cache size.
func (r *Registry) Locator(scenarioRoot string) (*PathLocator, error) {
	return r.LocatorSized(scenarioRoot, DefaultCacheSize)
}

// LocatorSized is Locator with an explicit cache size.
func (r *Registry) LocatorSized(scenarioRoot string, cacheSize int) (*PathLocator, error) {
	cache, err := lru.New[pathKey, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("locator cache: %w", err)
	}
	return &PathLocator{registry: r, root: scenarioRoot, cache: cache}, nil
}

// Resolve implements Locator.
func (l *PathLocator) Resolve(accessor string) (string, error) {
	return l.resolve(accessor, "")
}

// ResolveFor implements Locator.
func (l *PathLocator) ResolveFor(accessor, building string) (string, error) {
	return l.resolve(accessor, building)
}

func (l *PathLocator) resolve(accessor, building string) (string, error) {
	key := pathKey{accessor: accessor, building: building}
	if path, ok := l.cache.Get(key); ok {
		return path, nil
	}

	binding, err := l.registry.Resolve(accessor)
	if err != nil {
		return "", err
	}

	name := binding.Artifact.Name
	if building != "" {
		name = strings.ReplaceAll(name, artifact.BuildingPlaceholder, building)
	}
	path := filepath.Join(l.root, filepath.FromSlash(binding.Artifact.Category), name)

	if binding.Mode == artifact.Write {
		if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
			return "", fmt.Errorf("prepare output directory for accessor %q: %w", accessor, err)
		}
	}

	l.cache.Add(key, path)
	return path, nil
}
