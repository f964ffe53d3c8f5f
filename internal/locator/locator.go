package locator

import "fmt"

// Locator is the path resolution capability handed to script run functions.
// A script participates in graph construction purely through the calls it
// makes against this interface.
type Locator interface {
	// Resolve returns the path for the artifact behind the accessor, with
	// any template placeholder left intact.
	Resolve(accessor string) (string, error)

	// ResolveFor returns the path with the building placeholder expanded
	// to the given building identifier.
	ResolveFor(accessor, building string) (string, error)
}

// UnknownAccessorError reports a lookup of an accessor name that was never
// registered. Script is set when the lookup happened inside a script run.
type UnknownAccessorError struct {
	Accessor string
	Script   string
}

func (e *UnknownAccessorError) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("script %q called unknown accessor %q", e.Script, e.Accessor)
	}
	return fmt.Sprintf("unknown accessor %q", e.Accessor)
}
