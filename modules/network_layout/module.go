// Package network_layout wires the thermal network layout script into the
// registry.
package network_layout

import (
	"context"

	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
	"github.com/uesim/tracegraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// RunNetworkLayout is the dry-run entrypoint for the network-layout
// script. The layout heuristic routes pipes along the street graph towards
// the buildings the demand totals mark as heat consumers.
func RunNetworkLayout(ctx context.Context, loc locator.Locator) error {
	logger := ctxlog.FromContext(ctx)

	for _, accessor := range []string{
		"get_zone_geometry",
		"get_streets",
		"get_total_demand",
	} {
		if _, err := loc.Resolve(accessor); err != nil {
			return err
		}
	}
	logger.Debug("Network inputs resolved.")

	if _, err := loc.Resolve("put_network_edges"); err != nil {
		return err
	}
	_, err := loc.Resolve("put_network_nodes")
	return err
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("RunNetworkLayout", RunNetworkLayout)
}
