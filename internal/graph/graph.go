package graph

import (
	"sort"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/trace"
)

// Edge is one dependency between a script and an artifact. Mode Read means
// artifact→script (the script consumes it), Mode Write means script→artifact
// (the script produces it). Accessor is the documentation label: when
// several accessors collapse into one (script, artifact, mode) edge, the
// lexicographically smallest name is retained.
type Edge struct {
	Script   string
	Artifact artifact.Ref
	Mode     artifact.Mode
	Accessor string
}

// edgeKey identifies an edge for deduplication.
type edgeKey struct {
	script      string
	artifactKey string
	mode        artifact.Mode
}

// edgeData is the stored form of an edge. The artifact is kept as a key so
// that every exposed Edge carries the node's canonical Ref.
type edgeData struct {
	edgeKey
	accessor string
}

// scriptNode indexes one script's edges by artifact key.
type scriptNode struct {
	name   string
	reads  map[string]*edgeData
	writes map[string]*edgeData
}

// artifactNode indexes one artifact's edges by script name.
type artifactNode struct {
	ref     artifact.Ref
	readers map[string]*edgeData
	writers map[string]*edgeData
}

// Graph is the bipartite dependency graph. Invariant: every edge has
// exactly one script endpoint and one artifact endpoint; there is no
// script-script or artifact-artifact adjacency outside the projection.
type Graph struct {
	scripts   map[string]*scriptNode
	artifacts map[string]*artifactNode
	edges     map[edgeKey]*edgeData
}

// Build folds the trace set into a graph. Nodes are created on first
// sight and reused afterwards; edges are deduplicated by (script,
// artifact, mode). A script whose dry run made no locator calls still
// gets a node. The fold is single-threaded and order-independent:
// permuting traces or records yields a structurally identical graph.
func Build(traces []trace.Trace) *Graph {
	g := &Graph{
		scripts:   make(map[string]*scriptNode),
		artifacts: make(map[string]*artifactNode),
		edges:     make(map[edgeKey]*edgeData),
	}
	for _, tr := range traces {
		if tr.Script != "" {
			g.ensureScript(tr.Script)
		}
		for _, rec := range tr.Records {
			g.addRecord(rec)
		}
	}
	return g
}

func (g *Graph) addRecord(rec trace.Record) {
	s := g.ensureScript(rec.Script)
	a := g.ensureArtifact(rec.Artifact)

	key := edgeKey{script: rec.Script, artifactKey: rec.Artifact.Key(), mode: rec.Mode}
	e, ok := g.edges[key]
	if !ok {
		e = &edgeData{edgeKey: key, accessor: rec.Accessor}
		g.edges[key] = e
		switch rec.Mode {
		case artifact.Read:
			s.reads[key.artifactKey] = e
			a.readers[rec.Script] = e
		case artifact.Write:
			s.writes[key.artifactKey] = e
			a.writers[rec.Script] = e
		}
		return
	}
	if rec.Accessor < e.accessor {
		e.accessor = rec.Accessor
	}
}

func (g *Graph) ensureScript(name string) *scriptNode {
	s, ok := g.scripts[name]
	if !ok {
		s = &scriptNode{
			name:   name,
			reads:  make(map[string]*edgeData),
			writes: make(map[string]*edgeData),
		}
		g.scripts[name] = s
	}
	return s
}

func (g *Graph) ensureArtifact(ref artifact.Ref) *artifactNode {
	key := ref.Key()
	a, ok := g.artifacts[key]
	if !ok {
		a = &artifactNode{
			ref:     ref,
			readers: make(map[string]*edgeData),
			writers: make(map[string]*edgeData),
		}
		g.artifacts[key] = a
		return a
	}
	// Two configured artifacts can collide on one key with different kinds.
	// Merge with a canonical rule so rebuild order cannot change the node.
	if a.ref.Kind != ref.Kind {
		a.ref.Kind = mergeKind(a.ref.Kind, ref.Kind)
	}
	return a
}

func mergeKind(a, b artifact.Kind) artifact.Kind {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if b < a {
		return b
	}
	return a
}

// edgeOut assembles the public form of a stored edge with the canonical
// artifact ref.
func (g *Graph) edgeOut(e *edgeData) Edge {
	return Edge{
		Script:   e.script,
		Artifact: g.artifacts[e.artifactKey].ref,
		Mode:     e.mode,
		Accessor: e.accessor,
	}
}

// NumScripts returns the number of script nodes.
func (g *Graph) NumScripts() int { return len(g.scripts) }

// NumArtifacts returns the number of artifact nodes.
func (g *Graph) NumArtifacts() int { return len(g.artifacts) }

// NumEdges returns the number of deduplicated edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// HasScript reports whether a script node exists.
func (g *Graph) HasScript(name string) bool {
	_, ok := g.scripts[name]
	return ok
}

// Artifact returns the canonical ref stored under the given key.
func (g *Graph) Artifact(key string) (artifact.Ref, bool) {
	a, ok := g.artifacts[key]
	if !ok {
		return artifact.Ref{}, false
	}
	return a.ref, true
}

// Scripts returns every script name in sorted order.
func (g *Graph) Scripts() []string {
	names := make([]string, 0, len(g.scripts))
	for name := range g.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Artifacts returns every artifact ref sorted by category, then name.
func (g *Graph) Artifacts() []artifact.Ref {
	refs := make([]artifact.Ref, 0, len(g.artifacts))
	for _, a := range g.artifacts {
		refs = append(refs, a.ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

// Edges returns every edge sorted by artifact key, script, then mode.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, g.edgeOut(e))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ak, bk := a.Artifact.Key(), b.Artifact.Key(); ak != bk {
			return ak < bk
		}
		if a.Script != b.Script {
			return a.Script < b.Script
		}
		return a.Mode < b.Mode
	})
	return out
}

// Readers returns the read edges of one artifact sorted by script name.
func (g *Graph) Readers(key string) []Edge {
	a, ok := g.artifacts[key]
	if !ok {
		return nil
	}
	return g.sortByScript(a.readers)
}

// Writers returns the write edges of one artifact sorted by script name.
func (g *Graph) Writers(key string) []Edge {
	a, ok := g.artifacts[key]
	if !ok {
		return nil
	}
	return g.sortByScript(a.writers)
}

// ScriptReads returns one script's read edges sorted by artifact key.
func (g *Graph) ScriptReads(name string) []Edge {
	s, ok := g.scripts[name]
	if !ok {
		return nil
	}
	return g.sortByArtifact(s.reads)
}

// ScriptWrites returns one script's write edges sorted by artifact key.
func (g *Graph) ScriptWrites(name string) []Edge {
	s, ok := g.scripts[name]
	if !ok {
		return nil
	}
	return g.sortByArtifact(s.writes)
}

func (g *Graph) sortByScript(edges map[string]*edgeData) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, g.edgeOut(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Script < out[j].Script })
	return out
}

func (g *Graph) sortByArtifact(edges map[string]*edgeData) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, g.edgeOut(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Artifact.Key() < out[j].Artifact.Key() })
	return out
}
