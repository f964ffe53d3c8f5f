// Package data_helper wires the archetype data helper into the registry.
// The script fills in the building property sheets that most downstream
// scripts read, querying statistical archetype data for every building
// the scenario knows nothing about yet.
package data_helper

import (
	"context"

	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunDataHelper is the dry-run entrypoint for the data-helper script. Its
// accessor calls mirror the IO of the real archetype mapper: geometry and
// survey inputs first, then one property sheet per domain.
func RunDataHelper(ctx context.Context, loc locator.Locator) error {
	logger := ctxlog.FromContext(ctx)

	for _, accessor := range []string{
		"get_zone_geometry",
		"get_building_age",
		"get_building_occupancy",
		"get_archetypes_properties",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	logger.Debug("Archetype inputs resolved.")

	for _, accessor := range []string{
		"put_building_architecture",
		"put_building_hvac",
		"put_building_comfort",
		"put_building_internal",
		"put_building_supply",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunDataHelper", RunDataHelper)
}
