package planner

import (
	"fmt"
	"strings"
)

// CycleError refuses a target whose closure touches mutually dependent
// scripts. Scripts holds every member of the offending group(s), sorted.
type CycleError struct {
	Scripts []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency: scripts %s admit no run order", strings.Join(e.Scripts, ", "))
}

// UnknownTargetError reports a target that matches no script and no
// artifact. Candidates is set when a bare artifact name matched several
// categories and the request needs a full category/name key instead.
type UnknownTargetError struct {
	Target     string
	Candidates []string
}

func (e *UnknownTargetError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("ambiguous target %q: matches artifacts %s", e.Target, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("unknown target %q: no script or artifact by that name", e.Target)
}
