// Package photovoltaic wires the photovoltaic potential script into the
// registry. It shares its whole input surface with the solar collector
// script; only the technology model differs.
package photovoltaic

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunPhotovoltaic is the dry-run entrypoint for the photovoltaic script.
func RunPhotovoltaic(ctx context.Context, loc locator.Locator) error {
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

	if _, err := loc.Resolve("put_pv_building"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_pv_totals")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunPhotovoltaic", RunPhotovoltaic)
}
