package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCatalog = `
variable "outputs" {
  default = "outputs/data"
}

artifact "total_demand" {
  category = "${var.outputs}/demand"
  template = "Total_demand.csv"
  kind     = "computed-result"
}

artifact "weather" {
  category = "inputs/weather"
  template = "weather.epw"
  kind     = "weather"
}

accessor "get_total_demand" {
  artifact = "total_demand"
  mode     = "read"
}

accessor "put_total_demand" {
  artifact = "total_demand"
  mode     = "write"
}

accessor "get_weather" {
  artifact = "weather"
  mode     = "read"
}

script "demand" {
  description = "Hourly end-use energy demand per building."
  run         = "RunDemand"
}
`

func TestLoaderLoadsCatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.hcl", sampleCatalog)

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	require.Len(t, model.Artifacts, 2)
	require.Len(t, model.Accessors, 3)
	require.Len(t, model.Scripts, 1)

	demand := model.Artifacts["total_demand"]
	require.NotNil(t, demand)
	assert.Equal(t, "outputs/data/demand", demand.Category, "var interpolation should expand")
	assert.Equal(t, "Total_demand.csv", demand.Template)
	assert.Equal(t, artifact.KindComputedResult, demand.Kind)

	get := model.Accessors["get_total_demand"]
	require.NotNil(t, get)
	assert.Equal(t, "total_demand", get.Artifact)
	assert.Equal(t, artifact.Read, get.Mode)

	put := model.Accessors["put_total_demand"]
	require.NotNil(t, put)
	assert.Equal(t, artifact.Write, put.Mode)

	script := model.Scripts["demand"]
	require.NotNil(t, script)
	assert.Equal(t, "RunDemand", script.Run)
}

func TestLoaderMergesBlocksAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vars.hcl", `
variable "inputs" {
  default = "inputs"
}
`)
	writeFile(t, dir, "artifacts.hcl", `
artifact "zone_geometry" {
  category = "${var.inputs}/building-geometry"
  template = "zone.shp"
  kind     = "gis"
}
`)
	writeFile(t, dir, "accessors.hcl", `
accessor "get_zone_geometry" {
  artifact = "zone_geometry"
  mode     = "read"
}
`)

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Contains(t, model.Artifacts, "zone_geometry")
	assert.Equal(t, "inputs/building-geometry", model.Artifacts["zone_geometry"].Category)
}

func TestLoaderAcceptsExplicitFilePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catalog.hcl", sampleCatalog)

	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	assert.Len(t, model.Artifacts, 2)
}

func TestLoaderRejectsNonHCLPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "catalog.yaml", "not: hcl")

	_, err := NewLoader().Load(testContext(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an .hcl file")
}

func TestLoaderRejectsMissingPath(t *testing.T) {
	_, err := NewLoader().Load(testContext(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access config path")
}

func TestLoaderErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "duplicate variable",
			content: `
variable "x" { default = "a" }
variable "x" { default = "b" }
`,
			wantErr: "already declared",
		},
		{
			name: "undeclared variable reference",
			content: `
artifact "a" {
  category = "${var.nope}/x"
  template = "a.csv"
  kind     = "computed-result"
}
`,
			wantErr: "failed to decode",
		},
		{
			name: "unknown kind",
			content: `
artifact "a" {
  category = "inputs"
  template = "a.csv"
  kind     = "parquet"
}
`,
			wantErr: "unknown artifact kind",
		},
		{
			name: "unknown mode",
			content: `
artifact "a" {
  category = "inputs"
  template = "a.csv"
  kind     = "computed-result"
}
accessor "get_a" {
  artifact = "a"
  mode     = "append"
}
`,
			wantErr: "unknown accessor mode",
		},
		{
			name: "empty category",
			content: `
artifact "a" {
  category = ""
  template = "a.csv"
  kind     = "computed-result"
}
`,
			wantErr: "category must not be empty",
		},
		{
			name: "accessor referencing unknown artifact",
			content: `
accessor "get_a" {
  artifact = "a"
  mode     = "read"
}
`,
			wantErr: "references undefined artifact",
		},
		{
			name: "script without run handler",
			content: `
script "demand" {
  description = "no handler"
  run         = ""
}
`,
			wantErr: "run must not be empty",
		},
		{
			name: "malformed syntax",
			content: `
artifact "a" {
`,
			wantErr: "failed to parse",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "catalog.hcl", tc.content)

			_, err := NewLoader().Load(testContext(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoaderDuplicateArtifactAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	block := `
artifact "a" {
  category = "inputs"
  template = "a.csv"
  kind     = "computed-result"
}
`
	writeFile(t, dir, "one.hcl", block)
	writeFile(t, dir, "two.hcl", block)

	_, err := NewLoader().Load(testContext(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate artifact definition")
}
