// Package testutil provides shared helpers for integration-style tests:
// a goroutine-safe log buffer, scenario fixture writers, and inline
// script modules for exercising the tracer without real handlers.
package testutil
