package registry

import (
	"fmt"
	"sort"

	"github.com/uesim/tracegraph/internal/config"
)

// Module is the interface that all script modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered handlers and script definitions for a
// single application instance.
type Registry struct {
	HandlerRegistry map[string]RunFunc
	ScriptRegistry  map[string]*config.ScriptDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry: make(map[string]RunFunc),
		ScriptRegistry:  make(map[string]*config.ScriptDefinition),
	}
}

// PopulateScriptsFromModel copies the loaded script definitions from the
// config model into the registry for easy access during tracing.
func (r *Registry) PopulateScriptsFromModel(model *config.Model) {
	for key, val := range model.Scripts {
		r.ScriptRegistry[key] = val
	}
}

// RunnerFor returns the Go handler behind the named script.
func (r *Registry) RunnerFor(script string) (RunFunc, error) {
	def, ok := r.ScriptRegistry[script]
	if !ok {
		return nil, fmt.Errorf("script %q is not registered", script)
	}
	fn, ok := r.HandlerRegistry[def.Run]
	if !ok {
		return nil, fmt.Errorf("script %q names run handler %q, which has no Go implementation", script, def.Run)
	}
	return fn, nil
}

// ScriptNames returns every registered script name in sorted order.
func (r *Registry) ScriptNames() []string {
	names := make([]string, 0, len(r.ScriptRegistry))
	for name := range r.ScriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
