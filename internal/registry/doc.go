// Package registry provides the central "glue" for the script catalog.
//
// The Registry stores the mapping between the handler identifiers used in
// script manifests (e.g. "RunDemand") and the compiled Go functions that
// implement each script's locator calls. It also holds the parsed,
// format-agnostic script definitions from the manifests themselves.
//
// During application startup, the registry is populated and then validated
// to ensure that the Go code and the public-facing manifests are perfectly
// in sync, preventing a wide class of runtime errors.
package registry
