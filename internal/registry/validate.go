package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/uesim/tracegraph/internal/ctxlog"
)

// ValidateRegistry performs a strict parity check between script manifests
// and Go code: every manifest must name a registered handler, and every
// registered handler must be claimed by a manifest. Drift in either
// direction is a startup error.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	claimed := make(map[string]string, len(r.ScriptRegistry))
	for _, name := range r.ScriptNames() {
		def := r.ScriptRegistry[name]
		if _, ok := r.HandlerRegistry[def.Run]; !ok {
			errs = append(errs, fmt.Sprintf("script '%s': manifest names run handler '%s', which is not registered in Go", name, def.Run))
			continue
		}
		if other, dup := claimed[def.Run]; dup {
			errs = append(errs, fmt.Sprintf("script '%s': run handler '%s' is already claimed by script '%s'", name, def.Run, other))
			continue
		}
		claimed[def.Run] = name
	}

	var orphaned []string
	for handler := range r.HandlerRegistry {
		if _, ok := claimed[handler]; !ok {
			orphaned = append(orphaned, handler)
		}
	}
	sort.Strings(orphaned)
	for _, handler := range orphaned {
		errs = append(errs, fmt.Sprintf("run handler '%s' is registered in Go but no script manifest claims it", handler))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.",
		"scripts", len(r.ScriptRegistry),
		"handlers", len(r.HandlerRegistry),
	)
	return nil
}
