package graph

import (
	"sort"

	"github.com/uesim/tracegraph/internal/artifact"
)

// Precedence is one edge of the script projection: After reads an artifact
// that Before writes, so Before must run first. Via names the artifact the
// contraction went through; when several artifacts link the same pair, the
// smallest key is kept.
type Precedence struct {
	Before string
	After  string
	Via    artifact.Ref
}

// Projection is the script-to-script precedence graph obtained by
// contracting every artifact that has at least one writer and at least one
// reader. A script reading and writing the same artifact yields a
// self-precedence edge; validation reports it as a cycle.
type Projection struct {
	nodes map[string]struct{}
	succ  map[string]map[string]artifact.Ref
	pred  map[string]map[string]artifact.Ref
}

// Project contracts the bipartite graph. Every script node is carried into
// the projection, including isolated ones.
func (g *Graph) Project() *Projection {
	p := &Projection{
		nodes: make(map[string]struct{}, len(g.scripts)),
		succ:  make(map[string]map[string]artifact.Ref),
		pred:  make(map[string]map[string]artifact.Ref),
	}
	for name := range g.scripts {
		p.nodes[name] = struct{}{}
	}
	for _, a := range g.artifacts {
		if len(a.writers) == 0 || len(a.readers) == 0 {
			continue
		}
		for writer := range a.writers {
			for reader := range a.readers {
				p.addEdge(writer, reader, a.ref)
			}
		}
	}
	return p
}

func (p *Projection) addEdge(before, after string, via artifact.Ref) {
	succ, ok := p.succ[before]
	if !ok {
		succ = make(map[string]artifact.Ref)
		p.succ[before] = succ
	}
	if existing, seen := succ[after]; seen && existing.Key() <= via.Key() {
		return
	}
	succ[after] = via

	pred, ok := p.pred[after]
	if !ok {
		pred = make(map[string]artifact.Ref)
		p.pred[after] = pred
	}
	pred[before] = via
}

// Scripts returns every projected script in sorted order.
func (p *Projection) Scripts() []string {
	names := make([]string, 0, len(p.nodes))
	for name := range p.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasScript reports whether the script is part of the projection.
func (p *Projection) HasScript(name string) bool {
	_, ok := p.nodes[name]
	return ok
}

// Successors returns the precedence edges leaving one script, sorted by
// the successor's name.
func (p *Projection) Successors(name string) []Precedence {
	out := make([]Precedence, 0, len(p.succ[name]))
	for after, via := range p.succ[name] {
		out = append(out, Precedence{Before: name, After: after, Via: via})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After < out[j].After })
	return out
}

// Predecessors returns the precedence edges entering one script, sorted by
// the predecessor's name.
func (p *Projection) Predecessors(name string) []Precedence {
	out := make([]Precedence, 0, len(p.pred[name]))
	for before, via := range p.pred[name] {
		out = append(out, Precedence{Before: before, After: name, Via: via})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before < out[j].Before })
	return out
}

// NumEdges returns the number of precedence edges.
func (p *Projection) NumEdges() int {
	n := 0
	for _, succ := range p.succ {
		n += len(succ)
	}
	return n
}

// CyclicGroups returns the script groups that cannot be ordered: strongly
// connected components of size greater than one, plus single scripts with a
// self-precedence edge. Group members are sorted by name, groups by their
// first member.
func (p *Projection) CyclicGroups() [][]string {
	var groups [][]string
	for _, scc := range p.stronglyConnected() {
		if len(scc) > 1 {
			groups = append(groups, scc)
			continue
		}
		name := scc[0]
		if _, self := p.succ[name][name]; self {
			groups = append(groups, scc)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// stronglyConnected runs Tarjan's algorithm over the projection. Roots are
// visited in sorted order so the output is stable; members of each
// component come back sorted.
func (p *Projection) stronglyConnected() [][]string {
	index := make(map[string]int, len(p.nodes))
	lowlink := make(map[string]int, len(p.nodes))
	onStack := make(map[string]bool, len(p.nodes))
	var stack []string
	next := 0

	var components [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, edge := range p.Successors(v) {
			w := edge.After
			if _, visited := index[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sort.Strings(scc)
			components = append(components, scc)
		}
	}

	for _, v := range p.Scripts() {
		if _, visited := index[v]; !visited {
			strongconnect(v)
		}
	}
	return components
}
