// Package embodied_energy wires the embodied energy script into the
// registry.
package embodied_energy

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunEmbodiedEnergy is the dry-run entrypoint for the embodied-energy
// script. Construction-phase emissions depend on the building fabric, not
// on the operational demand, so it reads the age survey and the
// architecture sheet instead of the demand totals.
func RunEmbodiedEnergy(ctx context.Context, loc locator.Locator) error {
	for _, accessor := range []string{
		"get_building_age",
		"get_building_architecture",
		"get_zone_geometry",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	_, err := loc.Resolve("put_lca_embodied")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunEmbodiedEnergy", RunEmbodiedEnergy)
}
