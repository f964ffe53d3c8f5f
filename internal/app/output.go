package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/uesim/tracegraph/internal/fsutil"
	"github.com/uesim/tracegraph/internal/graph"
	"github.com/uesim/tracegraph/internal/planner"
	"github.com/uesim/tracegraph/internal/render"
	"github.com/uesim/tracegraph/internal/trace"
)

// renderOrder plans the target and formats the run order, one script per
// line.
func (a *App) renderOrder(g *graph.Graph) (string, error) {
	plan, err := planner.Plan(g, a.cfg.Target)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Plan computed.", "target", a.cfg.Target, "scripts", len(plan))

	var b strings.Builder
	for _, script := range plan {
		b.WriteString(script)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// renderGraph serializes the whole graph, or one script's direct edges,
// as dot text.
func (a *App) renderGraph(g *graph.Graph) (string, error) {
	script, err := a.scopeScript(g)
	if err != nil {
		return "", err
	}
	return render.Dot(g, render.Options{Script: script})
}

// traceDocument is the YAML presentation of one script's trace.
type traceDocument struct {
	Script string      `yaml:"script"`
	RunID  string      `yaml:"run_id"`
	Calls  []traceCall `yaml:"calls"`
}

// traceCall is one locator invocation in call order. Path is the real
// resolution under the scenario root, with any building placeholder left
// intact.
type traceCall struct {
	Accessor string `yaml:"accessor"`
	Artifact string `yaml:"artifact"`
	Mode     string `yaml:"mode"`
	Path     string `yaml:"path"`
}

// renderTraces formats the raw trace records as YAML, either for every
// script or for the single targeted one. Unlike the dry runs themselves
// this resolves real paths, so output directories get prepared the same
// way a genuine write resolution prepares them.
func (a *App) renderTraces(g *graph.Graph, traces []trace.Trace) (string, error) {
	script, err := a.scopeScript(g)
	if err != nil {
		return "", err
	}

	loc, err := a.locators.Locator(a.cfg.ScenarioRoot)
	if err != nil {
		return "", err
	}

	docs := make([]traceDocument, 0, len(traces))
	for _, tr := range traces {
		if script != "" && tr.Script != script {
			continue
		}
		doc := traceDocument{
			Script: tr.Script,
			RunID:  tr.RunID,
			Calls:  make([]traceCall, 0, len(tr.Records)),
		}
		for _, rec := range tr.Records {
			path, err := loc.Resolve(rec.Accessor)
			if err != nil {
				return "", fmt.Errorf("resolve traced accessor %q: %w", rec.Accessor, err)
			}
			doc.Calls = append(doc.Calls, traceCall{
				Accessor: rec.Accessor,
				Artifact: rec.Artifact.Key(),
				Mode:     rec.Mode.String(),
				Path:     path,
			})
		}
		docs = append(docs, doc)
	}

	data, err := yaml.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("encode traces: %w", err)
	}
	return string(data), nil
}

// findingsReport formats the validation findings, one line each, in the
// validator's fixed order.
func findingsReport(findings []graph.Finding) string {
	if len(findings) == 0 {
		return "validation passed: no findings\n"
	}
	var b strings.Builder
	for _, f := range findings {
		fmt.Fprintf(&b, "[%s] %s\n", f.Severity, f)
	}
	return b.String()
}

// writeResult delivers the produced text to the configured sink.
func (a *App) writeResult(out string) error {
	if a.cfg.OutPath == "" {
		_, err := io.WriteString(a.outW, out)
		return err
	}
	if dir := filepath.Dir(a.cfg.OutPath); dir != "." {
		if err := fsutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("prepare output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(a.cfg.OutPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write result to %s: %w", a.cfg.OutPath, err)
	}
	a.logger.Info("Result written.", "path", a.cfg.OutPath, "bytes", len(out))
	return nil
}
