package app

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uesim/tracegraph/internal/hcl"
	"github.com/uesim/tracegraph/internal/planner"
	"github.com/uesim/tracegraph/internal/registry"
	"github.com/uesim/tracegraph/internal/testutil"
)

// pipelineFiles is a minimal two-script scenario: load-model turns the
// survey into load profiles, reporting summarizes them.
func pipelineFiles() map[string]string {
	return map[string]string{
		"config/locator.hcl": `
artifact "survey" {
  category = "inputs"
  template = "survey.csv"
  kind     = "tabular-property"
}

artifact "loads" {
  category = "outputs/data"
  template = "loads.csv"
  kind     = "computed-result"
}

artifact "report" {
  category = "outputs/data"
  template = "report.csv"
  kind     = "computed-result"
}

accessor "get_survey" {
  artifact = "survey"
  mode     = "read"
}

accessor "put_loads" {
  artifact = "loads"
  mode     = "write"
}

accessor "get_loads" {
  artifact = "loads"
  mode     = "read"
}

accessor "put_report" {
  artifact = "report"
  mode     = "write"
}
`,
		"modules/load_model/manifest.hcl": `
script "load-model" {
  description = "Aggregates survey rows into load profiles."
  run         = "RunLoadModel"
}
`,
		"modules/reporting/manifest.hcl": `
script "reporting" {
  description = "Summarizes load profiles into the final report."
  run         = "RunReporting"
}
`,
		"catalog.yaml": `
external:
  - category: inputs
    name: survey.csv
published:
  - category: outputs/data
    name: report.csv
`,
	}
}

func pipelineModules() []registry.Module {
	return []registry.Module{
		&testutil.Module{Handler: "RunLoadModel", Fn: testutil.ResolveAll("get_survey", "put_loads")},
		&testutil.Module{Handler: "RunReporting", Fn: testutil.ResolveAll("get_loads", "put_report")},
	}
}

// pipelineConfig materializes the fixture scenario and returns a Config
// pointed at it. Tests mutate the returned value for their variant.
func pipelineConfig(t *testing.T, target, mode string) *Config {
	t.Helper()

	root := testutil.WriteFiles(t, pipelineFiles())
	cfg, err := NewConfig(Config{
		Target:       target,
		Mode:         mode,
		ConfigPath:   filepath.Join(root, "config"),
		ModulesPath:  filepath.Join(root, "modules"),
		CatalogPath:  filepath.Join(root, "catalog.yaml"),
		ScenarioRoot: t.TempDir(),
	})
	require.NoError(t, err)
	return cfg
}

func TestNewAppRegistersScripts(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeOrder)
	testApp, _, _ := SetupAppTest(t, cfg, pipelineModules()...)

	assert.Equal(t, []string{"load-model", "reporting"}, testApp.Registry().ScriptNames())
}

func TestRunOrderAll(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeOrder)
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "load-model\nreporting\n", out.String())
}

func TestRunOrderForArtifactTarget(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "loads.csv", ModeOrder)
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "load-model\n", out.String())
}

func TestRunOrderUnknownTarget(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "does-not-exist", ModeOrder)
	testApp, _, _ := SetupAppTest(t, cfg, pipelineModules()...)

	err := testApp.Run(context.Background())
	var unknown *planner.UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "does-not-exist", unknown.Target)
}

func TestRunGraphMode(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeGraph)
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	text := out.String()
	assert.Contains(t, text, "digraph dependencies {")
	assert.Contains(t, text, `"load-model" [style = filled`)
	assert.Contains(t, text, `"survey.csv" -> "load-model" [label = "(get_survey)"];`)
	assert.Contains(t, text, `"reporting" -> "report.csv" [label = "(put_report)"];`)
}

func TestRunGraphRejectsArtifactTarget(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "loads.csv", ModeGraph)
	testApp, _, _ := SetupAppTest(t, cfg, pipelineModules()...)

	err := testApp.Run(context.Background())
	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Message, `"loads.csv"`)
}

func TestRunValidateCleanScenario(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeValidate)
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "validation passed: no findings\n", out.String())
}

func TestRunValidateReportsAdvisories(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeValidate)
	cfg.CatalogPath = ""
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	text := out.String()
	assert.Contains(t, text, `[advisory] OrphanInput: artifact "inputs/survey.csv"`)
	assert.Contains(t, text, `[advisory] DanglingOutput: artifact "outputs/data/report.csv"`)
	assert.NotContains(t, text, "[fatal]")
}

func TestRunLogsAdvisoryWarningsInOrderMode(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeOrder)
	cfg.CatalogPath = ""
	testApp, out, logs := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Equal(t, "load-model\nreporting\n", out.String())
	assert.Contains(t, logs.String(), "OrphanInput")
}

func TestRunTraceMode(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "reporting", ModeTrace)
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))
	text := out.String()
	assert.Contains(t, text, "script: reporting")
	assert.Contains(t, text, "accessor: get_loads")
	assert.Contains(t, text, "mode: write")
	assert.Contains(t, text, filepath.Join(cfg.ScenarioRoot, "outputs/data/report.csv"))
	assert.NotContains(t, text, "script: load-model")

	// Real path resolution prepares the write accessor's directory.
	assert.DirExists(t, filepath.Join(cfg.ScenarioRoot, "outputs/data"))
}

func TestRunWritesResultToFile(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeOrder)
	cfg.OutPath = filepath.Join(t.TempDir(), "reports", "plan.txt")
	testApp, out, _ := SetupAppTest(t, cfg, pipelineModules()...)

	require.NoError(t, testApp.Run(context.Background()))

	content, err := os.ReadFile(cfg.OutPath)
	require.NoError(t, err)
	assert.Equal(t, "load-model\nreporting\n", string(content))
	assert.Empty(t, out.String())
}

func TestNewAppMissingDefaultCatalog(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeValidate)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "absent.yaml")
	testApp, out, logs := SetupAppTest(t, cfg, pipelineModules()...)

	assert.Contains(t, logs.String(), "Catalog file missing")
	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, out.String(), "[advisory] OrphanInput")
}

func TestNewAppExplicitCatalogMissing(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeValidate)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "absent.yaml")
	cfg.CatalogSet = true

	_, err := NewApp(&testutil.SafeBuffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader(), pipelineModules()...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewAppRegistryParity(t *testing.T) {
	t.Parallel()

	cfg := pipelineConfig(t, "all", ModeOrder)

	// A manifest whose handler was never registered.
	_, err := NewApp(&testutil.SafeBuffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader(),
		&testutil.Module{Handler: "RunLoadModel", Fn: testutil.ResolveAll("get_survey", "put_loads")},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
	assert.Contains(t, err.Error(), "manifest names run handler 'RunReporting', which is not registered in Go")

	// A registered handler no manifest claims.
	mods := append(pipelineModules(), &testutil.Module{Handler: "RunUnused", Fn: testutil.ResolveAll()})
	_, err = NewApp(&testutil.SafeBuffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader(), mods...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run handler 'RunUnused' is registered in Go but no script manifest claims it")
}
