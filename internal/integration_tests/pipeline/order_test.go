package integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uesim/tracegraph/internal/app"
)

const diamondOrder = "prepare-zones\nsimulate-cooling\nsimulate-heating\naggregate-demand\n"

func TestPipelineOrderAll(t *testing.T) {
	t.Parallel()

	cfg := diamondConfig(t, "all", app.ModeOrder)
	testApp, out, _ := app.SetupAppTest(t, cfg, diamondModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, diamondOrder, out.String())
}

// The dry runs are scheduled across workers, so the order output must not
// depend on which simulation finishes its trace first.
func TestPipelineOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 5; i++ {
		cfg := diamondConfig(t, "all", app.ModeOrder)
		testApp, out, _ := app.SetupAppTest(t, cfg, diamondModules()...)

		require.NoError(t, testApp.Run(context.Background()))
		require.Equal(t, diamondOrder, out.String(), "run %d diverged", i)
	}
}

func TestPipelineOrderForBranch(t *testing.T) {
	t.Parallel()

	cfg := diamondConfig(t, "simulate-cooling", app.ModeOrder)
	testApp, out, _ := app.SetupAppTest(t, cfg, diamondModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "prepare-zones\nsimulate-cooling\n", out.String())
}

func TestPipelineValidateClean(t *testing.T) {
	t.Parallel()

	cfg := diamondConfig(t, "all", app.ModeValidate)
	testApp, out, _ := app.SetupAppTest(t, cfg, diamondModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "validation passed: no findings\n", out.String())
}
