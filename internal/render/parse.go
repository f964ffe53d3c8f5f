package render

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/graph"
	"github.com/uesim/tracegraph/internal/trace"
)

// Line shapes of the dot grammar Dot emits. The parser matches on trimmed
// lines, so indentation is free.
var (
	clusterOpenRe = regexp.MustCompile(`^subgraph\s+(cluster_[0-9]+_(in|out)|cluster_legend)\s*\{$`)
	labelRe       = regexp.MustCompile(`^label\s*=\s*"([^"]+)"\s*;$`)
	edgeRe        = regexp.MustCompile(`^"([^"]+)"\s*->\s*"([^"]+)"\s*\[label\s*=\s*"\(([^")]+)\)"\s*\]\s*;$`)
	scriptNodeRe  = regexp.MustCompile(`^"([^"]+)"\s*\[.*shape\s*=\s*note.*\]\s*;$`)
	bareNodeRe    = regexp.MustCompile(`^"([^"]+)"\s*;$`)
)

type rawEdge struct {
	from, to, accessor string
	line               int
}

// ParseDot reads dot text in the shape Dot produces and rebuilds the
// dependency graph from it. Cosmetic attributes are tolerated and dropped;
// the legend cluster is skipped wholesale. Each parsed edge becomes a
// synthetic trace record, so the result folds through the same aggregation
// as a live dry run.
func ParseDot(text string) (*graph.Graph, error) {
	var (
		scripts    []string
		scriptSet  = make(map[string]bool)
		categoryOf = make(map[string]string)
		produced   = make(map[string]bool)
		edges      []rawEdge
	)

	inLegend := false
	inCluster := false
	clusterOut := false
	clusterLabel := ""
	var clusterNames []string

	closeCluster := func() error {
		if clusterLabel == "" && len(clusterNames) > 0 {
			return fmt.Errorf("cluster holds %d artifacts but carries no label", len(clusterNames))
		}
		for _, name := range clusterNames {
			if prev, ok := categoryOf[name]; ok && prev != clusterLabel {
				return fmt.Errorf("artifact %q listed under categories %q and %q", name, prev, clusterLabel)
			}
			categoryOf[name] = clusterLabel
			if clusterOut {
				produced[name] = true
			}
		}
		inCluster = false
		clusterLabel = ""
		clusterNames = nil
		return nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if inLegend {
			if line == "}" {
				inLegend = false
			}
			continue
		}

		if m := clusterOpenRe.FindStringSubmatch(line); m != nil {
			if m[1] == "cluster_legend" {
				inLegend = true
				continue
			}
			inCluster = true
			clusterOut = m[2] == "out"
			continue
		}

		if inCluster {
			switch {
			case line == "}":
				if err := closeCluster(); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			case labelRe.MatchString(line):
				clusterLabel = labelRe.FindStringSubmatch(line)[1]
			case bareNodeRe.MatchString(line):
				clusterNames = append(clusterNames, bareNodeRe.FindStringSubmatch(line)[1])
			case strings.Contains(line, "="):
				// Cluster styling, dropped.
			default:
				return nil, fmt.Errorf("line %d: unrecognized cluster line %q", lineNo, line)
			}
			continue
		}

		if m := edgeRe.FindStringSubmatch(line); m != nil {
			edges = append(edges, rawEdge{from: m[1], to: m[2], accessor: m[3], line: lineNo})
			continue
		}
		if m := scriptNodeRe.FindStringSubmatch(line); m != nil {
			if !scriptSet[m[1]] {
				scriptSet[m[1]] = true
				scripts = append(scripts, m[1])
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "digraph"), line == "}":
			// Document frame.
		case strings.HasPrefix(line, "graph "), strings.HasPrefix(line, "node "),
			strings.HasPrefix(line, "edge "), strings.Contains(line, "="):
			// Top level styling, dropped.
		default:
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dot text: %w", err)
	}
	if inLegend || inCluster {
		return nil, fmt.Errorf("dot text ends inside an open subgraph")
	}

	records := make(map[string][]trace.Record, len(scripts))
	writers := make(map[string]bool)
	for _, e := range edges {
		script, ref, mode, err := classify(e, scriptSet, categoryOf)
		if err != nil {
			return nil, err
		}
		if mode == artifact.Write {
			writers[ref.Name] = true
		}
		records[script] = append(records[script], trace.Record{
			Script:   script,
			Accessor: e.accessor,
			Artifact: ref,
			Mode:     mode,
		})
	}
	for _, name := range sortedKeys(categoryOf) {
		if produced[name] != writers[name] {
			return nil, fmt.Errorf("artifact %q sits in an %s cluster but its edges disagree", name, clusterKind(produced[name]))
		}
	}
	for script := range records {
		if !scriptSet[script] {
			scripts = append(scripts, script)
		}
	}
	sort.Strings(scripts)

	traces := make([]trace.Trace, 0, len(scripts))
	for _, script := range scripts {
		recs := records[script]
		for i := range recs {
			recs[i].Seq = i
		}
		traces = append(traces, trace.Trace{Script: script, Records: recs})
	}
	return graph.Build(traces), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clusterKind(produced bool) string {
	if produced {
		return "output"
	}
	return "input"
}

// classify decides which endpoint of a raw edge is the artifact. A read
// edge points artifact -> script, a write edge script -> artifact.
func classify(e rawEdge, scripts map[string]bool, categoryOf map[string]string) (string, artifact.Ref, artifact.Mode, error) {
	_, fromArt := categoryOf[e.from]
	_, toArt := categoryOf[e.to]
	switch {
	case fromArt && toArt:
		return "", artifact.Ref{}, 0, fmt.Errorf("line %d: edge %q -> %q joins two artifacts", e.line, e.from, e.to)
	case fromArt:
		if !scripts[e.to] {
			return "", artifact.Ref{}, 0, fmt.Errorf("line %d: edge target %q is not a declared script", e.line, e.to)
		}
		return e.to, artifact.Ref{Category: categoryOf[e.from], Name: e.from}, artifact.Read, nil
	case toArt:
		if !scripts[e.from] {
			return "", artifact.Ref{}, 0, fmt.Errorf("line %d: edge source %q is not a declared script", e.line, e.from)
		}
		return e.from, artifact.Ref{Category: categoryOf[e.to], Name: e.to}, artifact.Write, nil
	default:
		return "", artifact.Ref{}, 0, fmt.Errorf("line %d: edge %q -> %q references no clustered artifact", e.line, e.from, e.to)
	}
}
