// Package config defines the format-agnostic configuration model for the
// toolkit, along with the Loader interface for reading it from disk.
//
// The `config.Model` is the single source of truth for the locator
// registry and the script registry. Concrete loader implementations, such
// as for HCL, are provided in separate packages.
package config
