// Package locator implements the accessor registry at the bottom of the
// dependency tracing stack.
//
// An accessor is a named capability that resolves one artifact's path and
// carries a fixed access mode. The Registry is populated once from the
// loaded config model and is read-only afterwards; scripts never see it
// directly, only a Locator handed to their run function. The real
// PathLocator computes scenario paths (and is the only part of the
// subsystem allowed to touch disk, creating parent directories for write
// accessors); the tracing locator in the trace package substitutes it
// during dry runs.
package locator
