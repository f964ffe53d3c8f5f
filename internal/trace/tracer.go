package trace

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
)

// dryRunRoot anchors the fake paths handed back to scripts during a run.
// Nothing under it ever exists on disk.
const dryRunRoot = "/dry-run"

// RunFunc is the shape of the script body a Tracer can execute.
type RunFunc func(ctx context.Context, loc locator.Locator) error

// Tracer executes script run functions under interception.
type Tracer struct {
	registry *locator.Registry
}

// New creates a Tracer over the given accessor registry.
func New(registry *locator.Registry) *Tracer {
	return &Tracer{registry: registry}
}

// Run executes fn as a dry run of the named script. On success it returns
// the run's trace. On failure it returns a *FailureError carrying the
// partial trace; the run's records are otherwise discarded, never merged
// into any shared state.
func (t *Tracer) Run(ctx context.Context, script string, fn RunFunc) (Trace, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("script", script, "run_id", runID)

	rec := &recordingLocator{ctx: ctx, registry: t.registry, script: script}
	logger.Debug("Dry run started.")

	if err := fn(ctx, rec); err != nil {
		logger.Debug("Dry run failed.", "error", err, "partial_records", len(rec.records))
		return Trace{}, &FailureError{Script: script, RunID: runID, Partial: rec.records, Err: err}
	}

	logger.Debug("Dry run complete.", "records", len(rec.records))
	return Trace{Script: script, RunID: runID, Records: rec.records}, nil
}

// recordingLocator implements locator.Locator for one dry run. It resolves
// accessor names against the real registry but suppresses every disk side
// effect; the paths it returns are syntactically valid and nothing more.
type recordingLocator struct {
	ctx      context.Context
	registry *locator.Registry
	script   string
	records  []Record
}

func (l *recordingLocator) Resolve(accessor string) (string, error) {
	return l.record(accessor, "")
}

func (l *recordingLocator) ResolveFor(accessor, building string) (string, error) {
	return l.record(accessor, building)
}

func (l *recordingLocator) record(accessor, building string) (string, error) {
	if err := l.ctx.Err(); err != nil {
		return "", err
	}

	binding, err := l.registry.Resolve(accessor)
	if err != nil {
		var unknown *locator.UnknownAccessorError
		if errors.As(err, &unknown) {
			return "", &locator.UnknownAccessorError{Accessor: accessor, Script: l.script}
		}
		return "", err
	}

	l.records = append(l.records, Record{
		Script:   l.script,
		Accessor: accessor,
		Artifact: binding.Artifact,
		Mode:     binding.Mode,
		Seq:      len(l.records),
	})

	name := binding.Artifact.Name
	if building != "" {
		name = strings.ReplaceAll(name, artifact.BuildingPlaceholder, building)
	}
	return path.Join(dryRunRoot, binding.Artifact.Category, name), nil
}
