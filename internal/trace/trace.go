package trace

import (
	"fmt"

	"github.com/uesim/tracegraph/internal/artifact"
)

// Record is one observed accessor invocation. Seq numbers records within a
// single run, starting at zero, in invocation order.
type Record struct {
	Script   string
	Accessor string
	Artifact artifact.Ref
	Mode     artifact.Mode
	Seq      int
}

// Trace is the complete record list of one dry run. It is owned by the
// tracer while the run executes and handed by value to the graph builder
// afterwards; it is never persisted.
type Trace struct {
	Script  string
	RunID   string
	Records []Record
}

// FailureError annotates a dry run failure with the partial trace collected
// before the script raised. The cause is reachable through Unwrap.
type FailureError struct {
	Script  string
	RunID   string
	Partial []Record
	Err     error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("dry run of script %q failed after %d locator calls: %v", e.Script, len(e.Partial), e.Err)
}

func (e *FailureError) Unwrap() error {
	return e.Err
}
