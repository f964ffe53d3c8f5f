// Package demand wires the building energy demand script into the
// registry. Demand sits in the middle of the pipeline: it consumes the
// radiation results and every property sheet the data helper produces,
// and its totals feed the emissions, costs, and network scripts.
package demand

import (
	"context"

	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// inputAccessors lists the demand model's reads in the order the real
// calculation opens them.
var inputAccessors = []string{
	"get_weather",
	"get_radiation_building",
	"get_surface_properties",
	"get_building_architecture",
	"get_building_hvac",
	"get_building_comfort",
	"get_building_internal",
	"get_building_supply",
	"get_archetypes_schedules",
}

// RunDemand is the dry-run entrypoint for the demand script.
func RunDemand(ctx context.Context, loc locator.Locator) error {
	logger := ctxlog.FromContext(ctx)

	for _, accessor := range inputAccessors {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	logger.Debug("Demand inputs resolved.", "count", len(inputAccessors))

	if _, err := loc.Resolve("put_demand_building"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_total_demand")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunDemand", RunDemand)
}
