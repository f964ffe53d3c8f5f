// Package operation_costs wires the operation costs script into the
// registry.
package operation_costs

import (
	"context"

	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunOperationCosts is the dry-run entrypoint for the operation-costs
// script.
func RunOperationCosts(ctx context.Context, loc locator.Locator) error {
	if _, err := loc.Resolve("get_total_demand"); err != nil {
		return err
	}
	if _, err := loc.Resolve("get_supply_systems"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_operation_costs")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunOperationCosts", RunOperationCosts)
}
