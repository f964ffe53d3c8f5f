// Package mobility wires the urban mobility emissions script into the
// registry.
package mobility

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunMobility is the dry-run entrypoint for the mobility script. The
// mobility model scales statistical transport emissions by the occupancy
// implied in the demand totals, so the demand file is its only input.
func RunMobility(ctx context.Context, loc locator.Locator) error {
	if _, err := loc.Resolve("get_total_demand"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_lca_mobility")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunMobility", RunMobility)
}
