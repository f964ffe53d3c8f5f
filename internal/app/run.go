package app

import (
	"context"
	"fmt"

	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/graph"
	"github.com/uesim/tracegraph/internal/planner"
	"github.com/uesim/tracegraph/internal/trace"
)

// Run executes the main application logic: dry-run every registered
// script, fold the traces into the dependency graph, then write the
// projection the configured mode asks for.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.cfg.Mode, "target", a.cfg.Target)

	traces, err := a.traceScripts(ctx)
	if err != nil {
		return fmt.Errorf("dependency tracing failed: %w", err)
	}

	g := graph.Build(traces)
	a.logger.Debug("Dependency graph built.",
		"scripts", g.NumScripts(),
		"artifacts", g.NumArtifacts(),
		"edges", g.NumEdges(),
	)

	findings := graph.Validate(g, a.catalog)
	if a.cfg.Mode != ModeValidate {
		// Advisory findings never block, but they should not pass silently
		// either.
		for _, f := range findings {
			if f.Severity == graph.Advisory {
				a.logger.Warn(f.String())
			}
		}
	}

	var out string
	switch a.cfg.Mode {
	case ModeOrder:
		out, err = a.renderOrder(g)
	case ModeGraph:
		out, err = a.renderGraph(g)
	case ModeTrace:
		out, err = a.renderTraces(g, traces)
	case ModeValidate:
		if err := a.writeResult(findingsReport(findings)); err != nil {
			return err
		}
		return fatalFindingError(findings)
	default:
		err = &UsageError{Message: fmt.Sprintf("unknown mode %q", a.cfg.Mode)}
	}
	if err != nil {
		return err
	}
	return a.writeResult(out)
}

// traceScripts dry-runs every registered script and returns their traces
// in script name order.
func (a *App) traceScripts(ctx context.Context) ([]trace.Trace, error) {
	names := a.registry.ScriptNames()
	runs := make([]trace.ScriptRun, 0, len(names))
	for _, name := range names {
		fn, err := a.registry.RunnerFor(name)
		if err != nil {
			return nil, err
		}
		runs = append(runs, trace.ScriptRun{Script: name, Fn: trace.RunFunc(fn)})
	}

	tracer := trace.New(a.locators)
	return trace.TraceAll(ctx, tracer, runs, a.cfg.WorkerCount)
}

// scopeScript resolves the target for the modes that accept only "all" or
// a single script. It returns "" for the whole graph.
func (a *App) scopeScript(g *graph.Graph) (string, error) {
	target := a.cfg.Target
	if target == planner.TargetAll {
		return "", nil
	}
	if g.HasScript(target) {
		return target, nil
	}
	if isArtifactTarget(g, target) {
		return "", &UsageError{Message: fmt.Sprintf(
			"artifact target %q is only valid in %s mode; pass %q or a script name",
			target, ModeOrder, planner.TargetAll,
		)}
	}
	return "", &planner.UnknownTargetError{Target: target}
}

func isArtifactTarget(g *graph.Graph, target string) bool {
	if _, ok := g.Artifact(target); ok {
		return true
	}
	for _, ref := range g.Artifacts() {
		if ref.Name == target {
			return true
		}
	}
	return false
}

// fatalFindingError converts the first fatal finding into the planner's
// cycle error so validate mode exits like a refused plan.
func fatalFindingError(findings []graph.Finding) error {
	for _, f := range findings {
		if f.Severity == graph.Fatal {
			return &planner.CycleError{Scripts: f.Scripts}
		}
	}
	return nil
}
