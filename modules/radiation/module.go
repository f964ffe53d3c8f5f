// Package radiation wires the solar radiation script into the registry.
package radiation

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunRadiation is the dry-run entrypoint for the radiation script. The
// real solver meshes zone and district geometry over the terrain, runs the
// insolation model against the weather file, and writes one result file
// per building plus the shared surface table.
func RunRadiation(ctx context.Context, loc locator.Locator) error {
	for _, accessor := range []string{
		"get_zone_geometry",
		"get_district_geometry",
		"get_terrain",
		"get_weather",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}

	for _, accessor := range []string{
		"put_surface_properties",
		"put_radiation_geometry",
		"put_radiation_building",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunRadiation", RunRadiation)
}
