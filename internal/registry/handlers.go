package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uesim/tracegraph/internal/locator"
)

// RunFunc is the shape of a script's Go handler. The handler performs its
// accessor calls against the supplied Locator; under tracing those calls
// are what defines the script's place in the dependency graph.
type RunFunc func(ctx context.Context, loc locator.Locator) error

// RegisterHandler registers the Go function for a script's run handler.
func (r *Registry) RegisterHandler(name string, fn RunFunc) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("run handler with name '%s' already registered", name))
	}
	if fn == nil {
		panic(fmt.Sprintf("run handler '%s' registered with nil function", name))
	}
	slog.Debug("Registering run handler.", "name", name)
	r.HandlerRegistry[name] = fn
}
