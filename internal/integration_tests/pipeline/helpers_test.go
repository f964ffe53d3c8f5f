package integration_tests

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uesim/tracegraph/internal/app"
	"github.com/uesim/tracegraph/internal/registry"
	"github.com/uesim/tracegraph/internal/testutil"
)

// The diamond scenario: one preparation script fans out into two
// simulations that join again in an aggregation script.
//
//	prepare-zones -> simulate-heating -\
//	             \-> simulate-cooling --> aggregate-demand
func diamondFiles() map[string]string {
	return map[string]string{
		"config/locator.hcl": `
variable "demand" {
  default = "outputs/data/demand"
}

artifact "geometry" {
  category = "inputs/building-geometry"
  template = "zone.shp"
  kind     = "gis"
}

artifact "zones" {
  category = "outputs/data/zones"
  template = "zones.csv"
  kind     = "computed-result"
}

artifact "heating" {
  category = "${var.demand}"
  template = "heating.csv"
  kind     = "computed-result"
}

artifact "cooling" {
  category = "${var.demand}"
  template = "cooling.csv"
  kind     = "computed-result"
}

artifact "total" {
  category = "${var.demand}"
  template = "total.csv"
  kind     = "computed-result"
}

accessor "get_geometry" {
  artifact = "geometry"
  mode     = "read"
}

accessor "put_zones" {
  artifact = "zones"
  mode     = "write"
}

accessor "get_zones" {
  artifact = "zones"
  mode     = "read"
}

accessor "put_heating" {
  artifact = "heating"
  mode     = "write"
}

accessor "get_heating" {
  artifact = "heating"
  mode     = "read"
}

accessor "put_cooling" {
  artifact = "cooling"
  mode     = "write"
}

accessor "get_cooling" {
  artifact = "cooling"
  mode     = "read"
}

accessor "put_total" {
  artifact = "total"
  mode     = "write"
}
`,
		"modules/manifests.hcl": `
script "prepare-zones" {
  description = "Splits the zone geometry into simulation units."
  run         = "RunPrepareZones"
}

script "simulate-heating" {
  description = "Computes heating demand per zone."
  run         = "RunSimulateHeating"
}

script "simulate-cooling" {
  description = "Computes cooling demand per zone."
  run         = "RunSimulateCooling"
}

script "aggregate-demand" {
  description = "Joins both demand series into the total."
  run         = "RunAggregateDemand"
}
`,
		"catalog.yaml": `
external:
  - category: inputs/building-geometry
    name: zone.shp
published:
  - category: outputs/data/demand
    name: total.csv
`,
	}
}

func diamondModules() []registry.Module {
	return []registry.Module{
		&testutil.Module{Handler: "RunPrepareZones", Fn: testutil.ResolveAll("get_geometry", "put_zones")},
		&testutil.Module{Handler: "RunSimulateHeating", Fn: testutil.ResolveAll("get_zones", "put_heating")},
		&testutil.Module{Handler: "RunSimulateCooling", Fn: testutil.ResolveAll("get_zones", "put_cooling")},
		&testutil.Module{Handler: "RunAggregateDemand", Fn: testutil.ResolveAll("get_heating", "get_cooling", "put_total")},
	}
}

func diamondConfig(t *testing.T, target, mode string) *app.Config {
	t.Helper()

	root := testutil.WriteFiles(t, diamondFiles())
	cfg, err := app.NewConfig(app.Config{
		Target:       target,
		Mode:         mode,
		ConfigPath:   filepath.Join(root, "config"),
		ModulesPath:  filepath.Join(root, "modules"),
		CatalogPath:  filepath.Join(root, "catalog.yaml"),
		ScenarioRoot: t.TempDir(),
		WorkerCount:  4,
	})
	require.NoError(t, err)
	return cfg
}
