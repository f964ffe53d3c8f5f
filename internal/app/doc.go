// Package app contains the core application logic. It wires the config
// loader, the script registry, the tracer, and the graph stages into one
// lifecycle, decoupled from any specific entrypoint like a CLI.
package app
