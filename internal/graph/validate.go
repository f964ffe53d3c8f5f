package graph

import (
	"fmt"
	"strings"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/catalog"
)

// FindingType distinguishes the structural problems validation looks for.
type FindingType int

const (
	// OrphanInput marks an artifact that is read but produced by no script
	// and not declared externally supplied.
	OrphanInput FindingType = iota
	// Cycle marks a script group whose mutual dependencies admit no order.
	Cycle
	// DanglingOutput marks an artifact that is written but read by no
	// script and not declared a published deliverable.
	DanglingOutput
	// NoOutput marks a script whose dry run declared no write at all.
	NoOutput
)

// String returns the finding type's report name.
func (t FindingType) String() string {
	switch t {
	case OrphanInput:
		return "OrphanInput"
	case Cycle:
		return "Cycle"
	case DanglingOutput:
		return "DanglingOutput"
	case NoOutput:
		return "NoOutput"
	}
	return fmt.Sprintf("FindingType(%d)", int(t))
}

// Severity splits findings into the one class planning refuses to work
// around and everything else.
type Severity int

const (
	// Advisory findings are surfaced as warnings and never block.
	Advisory Severity = iota
	// Fatal findings make the planner refuse affected targets.
	Fatal
)

// String returns the severity's report label.
func (s Severity) String() string {
	switch s {
	case Advisory:
		return "advisory"
	case Fatal:
		return "fatal"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Finding is one validation result. Validation never fails; it reports
// findings and leaves severity policy to the caller.
type Finding struct {
	Type     FindingType
	Severity Severity
	// Artifact is set for OrphanInput and DanglingOutput.
	Artifact artifact.Ref
	// Scripts holds the cycle members for Cycle findings (sorted), or the
	// single script for NoOutput.
	Scripts []string
}

// String returns the actionable report line for the finding.
func (f Finding) String() string {
	switch f.Type {
	case OrphanInput:
		return fmt.Sprintf("OrphanInput: artifact %q is read but no script produces it and it is not in the external catalog", f.Artifact.Key())
	case Cycle:
		return fmt.Sprintf("Cycle: scripts %s depend on each other and admit no run order", strings.Join(f.Scripts, ", "))
	case DanglingOutput:
		return fmt.Sprintf("DanglingOutput: artifact %q is written but never read and it is not in the published catalog", f.Artifact.Key())
	case NoOutput:
		return fmt.Sprintf("NoOutput: script %q writes no artifact", strings.Join(f.Scripts, ", "))
	}
	return f.Type.String()
}

// Validate checks the graph for structural problems. The catalog supplies
// the two suppression lists: externally supplied artifacts are legitimate
// unproduced inputs, published artifacts are legitimate unread outputs.
// Findings come back in a fixed order: cycles first, then orphan inputs,
// dangling outputs, and no-output scripts, each sorted internally.
func Validate(g *Graph, cat *catalog.Catalog) []Finding {
	var findings []Finding

	projection := g.Project()
	for _, group := range projection.CyclicGroups() {
		findings = append(findings, Finding{
			Type:     Cycle,
			Severity: Fatal,
			Scripts:  group,
		})
	}

	for _, ref := range g.Artifacts() {
		key := ref.Key()
		readers := g.Readers(key)
		writers := g.Writers(key)
		if len(readers) > 0 && len(writers) == 0 && !cat.IsExternal(ref) {
			findings = append(findings, Finding{
				Type:     OrphanInput,
				Severity: Advisory,
				Artifact: ref,
			})
		}
	}

	for _, ref := range g.Artifacts() {
		key := ref.Key()
		readers := g.Readers(key)
		writers := g.Writers(key)
		if len(writers) > 0 && len(readers) == 0 && !cat.IsPublished(ref) {
			findings = append(findings, Finding{
				Type:     DanglingOutput,
				Severity: Advisory,
				Artifact: ref,
			})
		}
	}

	for _, script := range g.Scripts() {
		if len(g.ScriptWrites(script)) == 0 {
			findings = append(findings, Finding{
				Type:     NoOutput,
				Severity: Advisory,
				Scripts:  []string{script},
			})
		}
	}

	return findings
}
