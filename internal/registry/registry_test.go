package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uesim/tracegraph/internal/config"
	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/locator"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func noopRun(ctx context.Context, loc locator.Locator) error {
	return nil
}

func scriptDef(name, run string) *config.ScriptDefinition {
	return &config.ScriptDefinition{Name: name, Run: run}
}

func TestRegisterHandler(t *testing.T) {
	r := New()
	r.RegisterHandler("RunDemand", noopRun)
	assert.Len(t, r.HandlerRegistry, 1)

	assert.Panics(t, func() { r.RegisterHandler("RunDemand", noopRun) })
	assert.Panics(t, func() { r.RegisterHandler("RunNil", nil) })
}

func TestPopulateScriptsFromModel(t *testing.T) {
	m := config.NewModel()
	require.NoError(t, m.AddScript(scriptDef("demand", "RunDemand")))
	require.NoError(t, m.AddScript(scriptDef("radiation", "RunRadiation")))

	r := New()
	r.PopulateScriptsFromModel(m)
	assert.Len(t, r.ScriptRegistry, 2)
	assert.Equal(t, []string{"demand", "radiation"}, r.ScriptNames())
}

func TestRunnerFor(t *testing.T) {
	r := New()
	r.RegisterHandler("RunDemand", noopRun)
	r.ScriptRegistry["demand"] = scriptDef("demand", "RunDemand")

	fn, err := r.RunnerFor("demand")
	require.NoError(t, err)
	require.NotNil(t, fn)

	_, err = r.RunnerFor("mobility")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	r.ScriptRegistry["emissions"] = scriptDef("emissions", "RunEmissions")
	_, err = r.RunnerFor("emissions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go implementation")
}

func TestValidateRegistry(t *testing.T) {
	t.Run("passes when manifests and handlers agree", func(t *testing.T) {
		r := New()
		r.RegisterHandler("RunDemand", noopRun)
		r.RegisterHandler("RunRadiation", noopRun)
		r.ScriptRegistry["demand"] = scriptDef("demand", "RunDemand")
		r.ScriptRegistry["radiation"] = scriptDef("radiation", "RunRadiation")

		require.NoError(t, r.ValidateRegistry(testContext()))
	})

	t.Run("fails when a manifest names an unregistered handler", func(t *testing.T) {
		r := New()
		r.ScriptRegistry["demand"] = scriptDef("demand", "RunDemand")

		err := r.ValidateRegistry(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered in Go")
	})

	t.Run("fails when a handler has no manifest", func(t *testing.T) {
		r := New()
		r.RegisterHandler("RunGhost", noopRun)

		err := r.ValidateRegistry(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no script manifest claims it")
	})

	t.Run("fails when two scripts claim one handler", func(t *testing.T) {
		r := New()
		r.RegisterHandler("RunShared", noopRun)
		r.ScriptRegistry["demand"] = scriptDef("demand", "RunShared")
		r.ScriptRegistry["mobility"] = scriptDef("mobility", "RunShared")

		err := r.ValidateRegistry(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already claimed")
	})
}
