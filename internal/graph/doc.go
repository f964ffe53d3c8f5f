// Package graph is the aggregation layer of the tracing pipeline. It folds
// the per-script trace record lists into one bipartite dependency graph
// (script nodes, artifact nodes), projects that graph onto script-to-script
// precedence edges, and validates the result.
//
// The graph is derived state: it is rebuilt from the full trace set on
// every build and never hand-edited. After Build returns, the graph is
// immutable; every iteration surface is sorted so downstream planning and
// rendering are reproducible across runs.
package graph
