package locator

import (
	"fmt"
	"sort"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/config"
)

// Binding ties an accessor name to the artifact it resolves and the access
// mode an invocation represents.
type Binding struct {
	Accessor string
	Artifact artifact.Ref
	Mode     artifact.Mode
}

// Registry is the static accessor catalog. It is populated once from the
// config model and read-only afterwards, which is what makes concurrent
// dry runs safe without locking.
type Registry struct {
	bindings map[string]Binding
}

// NewRegistry builds the registry from a loaded config model. The model is
// expected to have passed Validate; an accessor pointing at an undefined
// artifact still fails here rather than producing a broken binding.
func NewRegistry(model *config.Model) (*Registry, error) {
	bindings := make(map[string]Binding, len(model.Accessors))
	for name, def := range model.Accessors {
		art, ok := model.Artifacts[def.Artifact]
		if !ok {
			return nil, fmt.Errorf("accessor %q references undefined artifact %q", name, def.Artifact)
		}
		bindings[name] = Binding{
			Accessor: name,
			Artifact: art.Ref(),
			Mode:     def.Mode,
		}
	}
	return &Registry{bindings: bindings}, nil
}

// Resolve returns the binding registered under the accessor name.
func (r *Registry) Resolve(accessor string) (Binding, error) {
	b, ok := r.bindings[accessor]
	if !ok {
		return Binding{}, &UnknownAccessorError{Accessor: accessor}
	}
	return b, nil
}

// Bindings returns every binding sorted by accessor name.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Accessor < out[j].Accessor })
	return out
}

// Len returns the number of registered accessors.
func (r *Registry) Len() int {
	return len(r.bindings)
}
