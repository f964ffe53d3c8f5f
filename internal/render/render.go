// Package render serializes the dependency graph into the Graphviz dot
// format used by the documentation pages, and parses that format back for
// audit tooling. Rendering is a pure projection of the graph; it never
// mutates it.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/graph"
)

// Node palette. Scripts render as teal notes, artifact clusters as grey
// folders tinted by direction.
const (
	colorProcess = "#3FC0C2"
	colorInputs  = "#E1F2F2"
	colorOutputs = "#AADCDD"
)

// Options control rendering.
type Options struct {
	// Script, when set, restricts output to that script's direct
	// input/output edges.
	Script string
}

// Dot serializes the graph as dot text. Artifact nodes are identified by
// their bare file name with the cluster supplying the category, exactly as
// the documentation pages expect, so rendering refuses graphs where one
// name appears under two categories or collides with a script name.
func Dot(g *graph.Graph, opts Options) (string, error) {
	s, err := scopeOf(g, opts)
	if err != nil {
		return "", err
	}
	if err := s.checkNames(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("    rankdir = \"LR\";\n")
	b.WriteString("    graph [overlap = false, fontname = \"arial\"];\n")
	b.WriteString("    node [shape = box, style = filled, fillcolor = white, fontsize = 15, fontname = \"arial\", fixedsize = false];\n")
	b.WriteString("    edge [fontname = \"arial\", fontsize = 15];\n")
	b.WriteString("\n")
	writeLegend(&b)

	b.WriteString("\n")
	for _, script := range s.scripts {
		fmt.Fprintf(&b, "    %q [style = filled, fillcolor = %q, shape = note, fontsize = 20];\n", script, colorProcess)
	}

	for n, category := range s.categories() {
		unproduced, produced := s.split(category)
		if len(unproduced) > 0 {
			writeCluster(&b, n, "in", colorInputs, category, unproduced)
		}
		if len(produced) > 0 {
			writeCluster(&b, n, "out", colorOutputs, category, produced)
		}
	}

	b.WriteString("\n")
	for _, e := range s.edges {
		switch e.Mode {
		case artifact.Read:
			fmt.Fprintf(&b, "    %q -> %q [label = \"(%s)\"];\n", e.Artifact.Name, e.Script, e.Accessor)
		case artifact.Write:
			fmt.Fprintf(&b, "    %q -> %q [label = \"(%s)\"];\n", e.Script, e.Artifact.Name, e.Accessor)
		}
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func writeLegend(b *strings.Builder) {
	b.WriteString("    subgraph cluster_legend {\n")
	b.WriteString("        style = invis;\n")
	fmt.Fprintf(b, "        \"process\" [style = filled, fillcolor = %q, shape = note, fontsize = 20];\n", colorProcess)
	fmt.Fprintf(b, "        \"inputs\" [style = filled, shape = folder, fillcolor = %q];\n", colorInputs)
	fmt.Fprintf(b, "        \"outputs\" [style = filled, shape = folder, fillcolor = %q];\n", colorOutputs)
	b.WriteString("        \"inputs\" -> \"process\" [style = invis];\n")
	b.WriteString("        \"process\" -> \"outputs\" [style = invis];\n")
	b.WriteString("    }\n")
}

func writeCluster(b *strings.Builder, n int, suffix, color, category string, names []string) {
	b.WriteString("\n")
	fmt.Fprintf(b, "    subgraph cluster_%d_%s {\n", n, suffix)
	b.WriteString("        style = filled;\n")
	fmt.Fprintf(b, "        color = %q;\n", color)
	b.WriteString("        fontsize = 25;\n")
	b.WriteString("        rank = same;\n")
	fmt.Fprintf(b, "        label = %q;\n", category)
	for _, name := range names {
		fmt.Fprintf(b, "        %q;\n", name)
	}
	b.WriteString("    }\n")
}

// scope is the slice of the graph a render covers.
type scope struct {
	scripts   []string
	artifacts []artifact.Ref
	edges     []graph.Edge
	produced  map[string]bool
}

func scopeOf(g *graph.Graph, opts Options) (*scope, error) {
	s := &scope{produced: make(map[string]bool)}

	if opts.Script == "" {
		s.scripts = g.Scripts()
		s.artifacts = g.Artifacts()
		s.edges = g.Edges()
		for _, e := range s.edges {
			if e.Mode == artifact.Write {
				s.produced[e.Artifact.Key()] = true
			}
		}
		return s, nil
	}

	if !g.HasScript(opts.Script) {
		return nil, fmt.Errorf("cannot render unknown script %q", opts.Script)
	}
	s.scripts = []string{opts.Script}
	s.edges = append(g.ScriptReads(opts.Script), g.ScriptWrites(opts.Script)...)
	sortEdges(s.edges)

	seen := make(map[string]bool)
	for _, e := range s.edges {
		key := e.Artifact.Key()
		if e.Mode == artifact.Write {
			s.produced[key] = true
		}
		if !seen[key] {
			seen[key] = true
			s.artifacts = append(s.artifacts, e.Artifact)
		}
	}
	sort.Slice(s.artifacts, func(i, j int) bool { return s.artifacts[i].Less(s.artifacts[j]) })
	return s, nil
}

func sortEdges(edges []graph.Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if ak, bk := a.Artifact.Key(), b.Artifact.Key(); ak != bk {
			return ak < bk
		}
		if a.Script != b.Script {
			return a.Script < b.Script
		}
		return a.Mode < b.Mode
	})
}

// checkNames enforces the one-id-space constraint of the dot output.
func (s *scope) checkNames() error {
	categoryOf := make(map[string]string, len(s.artifacts))
	for _, ref := range s.artifacts {
		if prev, ok := categoryOf[ref.Name]; ok && prev != ref.Category {
			return fmt.Errorf("cannot render: artifact name %q appears under categories %q and %q", ref.Name, prev, ref.Category)
		}
		categoryOf[ref.Name] = ref.Category
	}
	for _, script := range s.scripts {
		if _, ok := categoryOf[script]; ok {
			return fmt.Errorf("cannot render: name %q is both a script and an artifact", script)
		}
	}
	return nil
}

// categories returns the sorted category list of the scope; the position
// of a category in it is the cluster index.
func (s *scope) categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ref := range s.artifacts {
		if !seen[ref.Category] {
			seen[ref.Category] = true
			out = append(out, ref.Category)
		}
	}
	sort.Strings(out)
	return out
}

// split partitions one category's artifacts into unproduced and produced
// name lists, both sorted.
func (s *scope) split(category string) (unproduced, produced []string) {
	for _, ref := range s.artifacts {
		if ref.Category != category {
			continue
		}
		if s.produced[ref.Key()] {
			produced = append(produced, ref.Name)
		} else {
			unproduced = append(unproduced, ref.Name)
		}
	}
	sort.Strings(unproduced)
	sort.Strings(produced)
	return unproduced, produced
}
