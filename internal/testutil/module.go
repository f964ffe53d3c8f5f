package testutil

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module registers a single named handler, letting tests define script
// bodies inline instead of pulling in the shipped script modules.
type Module struct {
	Handler string
	Fn      registry.RunFunc
}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(m.Handler, m.Fn)
}

// ResolveAll returns a run function that resolves the given accessors in
// order and stops at the first failure. Most test scripts need nothing
// more than a fixed sequence of reads and writes.
func ResolveAll(accessors ...string) registry.RunFunc {
	return func(ctx context.Context, loc locator.Locator) error {
		for _, name := range accessors {
			if _, err := loc.Resolve(name); err != nil {
				return err
			}
		}
		return nil
	}
}
