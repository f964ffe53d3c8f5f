package integration_tests

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uesim/tracegraph/internal/app"
	"github.com/uesim/tracegraph/internal/cli"
	"github.com/uesim/tracegraph/internal/planner"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "ExitError carries its own code",
			err:  &cli.ExitError{Code: 7, Message: "boom"},
			code: 7,
		},
		{
			name: "UsageError maps to usage",
			err:  &app.UsageError{Message: "bad request"},
			code: cli.ExitUsage,
		},
		{
			name: "CycleError maps to cycle",
			err:  &planner.CycleError{Scripts: []string{"a", "b"}},
			code: cli.ExitCycle,
		},
		{
			name: "UnknownTargetError maps to unknown target",
			err:  &planner.UnknownTargetError{Target: "ghost"},
			code: cli.ExitUnknownTarget,
		},
		{
			name: "Wrapped cycle error still maps to cycle",
			err:  fmt.Errorf("planning failed: %w", &planner.CycleError{Scripts: []string{"a"}}),
			code: cli.ExitCycle,
		},
		{
			name: "Anything else is an internal failure",
			err:  errors.New("disk on fire"),
			code: cli.ExitFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.code, cli.ExitCodeFor(tc.err))
		})
	}
}
