// Package solar_collector wires the solar collector potential script into
// the registry.
package solar_collector

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunSolarCollector is the dry-run entrypoint for the solar-collector
// script.
func RunSolarCollector(ctx context.Context, loc locator.Locator) error {
	for _, accessor := range []string{
		"get_radiation_building",
		"get_radiation_geometry",
		"get_weather",
		"get_zone_geometry",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}

	if _, err := loc.Resolve("put_sc_building"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_sc_totals")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunSolarCollector", RunSolarCollector)
}
