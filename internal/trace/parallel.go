package trace

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/uesim/tracegraph/internal/ctxlog"
)

// ScriptRun pairs a script name with its run function for TraceAll.
type ScriptRun struct {
	Script string
	Fn     RunFunc
}

// TraceAll dry-runs every given script in parallel, bounded by workers
// (workers <= 0 picks min(NumCPU, script count)). Each run writes into its
// own result slot, so the returned traces follow the input order no matter
// how the runs were scheduled. The first failure cancels the remaining
// runs and is returned as-is, partial trace included.
func TraceAll(ctx context.Context, tracer *Tracer, runs []ScriptRun, workers int) ([]Trace, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(runs) {
		workers = len(runs)
	}
	if workers < 1 {
		workers = 1
	}
	ctxlog.FromContext(ctx).Debug("Tracing scripts.", "count", len(runs), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	traces := make([]Trace, len(runs))
	for i, run := range runs {
		g.Go(func() error {
			tr, err := tracer.Run(gctx, run.Script, run.Fn)
			if err != nil {
				return err
			}
			traces[i] = tr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}
