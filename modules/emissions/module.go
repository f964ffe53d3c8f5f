// Package emissions wires the operation emissions script into the
// registry.
package emissions

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunEmissions is the dry-run entrypoint for the emissions script. The
// real calculation joins the demand totals with each building's supply
// system to derive operational emissions and primary energy.
func RunEmissions(ctx context.Context, loc locator.Locator) error {
	if _, err := loc.Resolve("get_total_demand"); err != nil {
		return err
	}
	if _, err := loc.Resolve("get_building_supply"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_lca_operation")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunEmissions", RunEmissions)
}
