// Package planner computes deterministic run orders over the dependency
// graph. A plan is the topological order of a target's upstream closure;
// whenever several scripts are simultaneously eligible, the smallest name
// runs first, so identical graphs always yield identical plans.
package planner

import (
	"container/heap"
	"sort"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/graph"
)

// TargetAll is the sentinel requesting an order over every script.
const TargetAll = "all"

// Plan computes the run order for a target. A target is matched in this
// order: TargetAll, script name, artifact key (category/name), bare
// artifact name when unique. For a script the plan ends with the script
// itself; for an artifact the plan covers every producer's closure; an
// artifact nobody produces yields an empty plan.
func Plan(g *graph.Graph, target string) ([]string, error) {
	p := g.Project()

	closure, err := closureFor(g, p, target)
	if err != nil {
		return nil, err
	}

	if cyclic := cyclicInside(p, closure); len(cyclic) > 0 {
		return nil, &CycleError{Scripts: cyclic}
	}
	return order(p, closure), nil
}

func closureFor(g *graph.Graph, p *graph.Projection, target string) (map[string]struct{}, error) {
	if target == TargetAll {
		closure := make(map[string]struct{}, g.NumScripts())
		for _, name := range g.Scripts() {
			closure[name] = struct{}{}
		}
		return closure, nil
	}

	if g.HasScript(target) {
		return ancestors(p, []string{target}), nil
	}

	if ref, ok := g.Artifact(target); ok {
		return producerClosure(g, p, ref), nil
	}

	matches := matchBareName(g, target)
	switch len(matches) {
	case 0:
		return nil, &UnknownTargetError{Target: target}
	case 1:
		return producerClosure(g, p, matches[0]), nil
	default:
		keys := make([]string, len(matches))
		for i, ref := range matches {
			keys[i] = ref.Key()
		}
		return nil, &UnknownTargetError{Target: target, Candidates: keys}
	}
}

// ancestors computes the predecessor-closed set reachable backwards from
// the seeds, seeds included.
func ancestors(p *graph.Projection, seeds []string) map[string]struct{} {
	closure := make(map[string]struct{})
	stack := append([]string(nil), seeds...)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := closure[name]; seen {
			continue
		}
		closure[name] = struct{}{}
		for _, pre := range p.Predecessors(name) {
			stack = append(stack, pre.Before)
		}
	}
	return closure
}

func producerClosure(g *graph.Graph, p *graph.Projection, ref artifact.Ref) map[string]struct{} {
	writers := g.Writers(ref.Key())
	seeds := make([]string, 0, len(writers))
	for _, e := range writers {
		seeds = append(seeds, e.Script)
	}
	if len(seeds) == 0 {
		return map[string]struct{}{}
	}
	return ancestors(p, seeds)
}

func matchBareName(g *graph.Graph, name string) []artifact.Ref {
	var matches []artifact.Ref
	for _, ref := range g.Artifacts() {
		if ref.Name == name {
			matches = append(matches, ref)
		}
	}
	return matches
}

// cyclicInside collects the members of every cyclic group touching the
// closure. The closure is predecessor-closed, so a touched group is always
// fully inside it.
func cyclicInside(p *graph.Projection, closure map[string]struct{}) []string {
	var members []string
	for _, group := range p.CyclicGroups() {
		touching := false
		for _, s := range group {
			if _, ok := closure[s]; ok {
				touching = true
				break
			}
		}
		if touching {
			members = append(members, group...)
		}
	}
	sort.Strings(members)
	return members
}

// order runs Kahn's algorithm restricted to the closure. The ready queue
// is a min-heap of script names, which is the deterministic tie-break.
func order(p *graph.Projection, closure map[string]struct{}) []string {
	indeg := make(map[string]int, len(closure))
	for name := range closure {
		indeg[name] = 0
	}
	for name := range closure {
		for _, pre := range p.Predecessors(name) {
			if _, ok := closure[pre.Before]; ok {
				indeg[name]++
			}
		}
	}

	ready := &nameMinHeap{}
	heap.Init(ready)
	for name, d := range indeg {
		if d == 0 {
			heap.Push(ready, name)
		}
	}

	out := make([]string, 0, len(closure))
	for ready.Len() > 0 {
		name := heap.Pop(ready).(string)
		out = append(out, name)
		for _, succ := range p.Successors(name) {
			if _, ok := closure[succ.After]; !ok {
				continue
			}
			indeg[succ.After]--
			if indeg[succ.After] == 0 {
				heap.Push(ready, succ.After)
			}
		}
	}
	return out
}

type nameMinHeap []string

func (h nameMinHeap) Len() int           { return len(h) }
func (h nameMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h nameMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nameMinHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *nameMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
