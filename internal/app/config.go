package app

import (
	"errors"
	"fmt"
)

// Run modes. Every mode traces and builds the full graph first; they
// differ only in which projection of it is written out.
const (
	// ModeOrder writes the execution order for the target, one script per
	// line.
	ModeOrder = "order"
	// ModeGraph writes the dependency graph as Graphviz dot text.
	ModeGraph = "graph"
	// ModeValidate writes the structural findings report.
	ModeValidate = "validate"
	// ModeTrace writes the raw per-script trace records as YAML.
	ModeTrace = "trace"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Target selects what to plan or render: a script name, an artifact
	// key or unique bare name, or "all".
	Target string
	Mode   string

	ConfigPath  string // locator catalog, .hcl file or directory
	ModulesPath string // script manifests directory
	CatalogPath string // external/published artifact catalog YAML
	// CatalogSet marks CatalogPath as explicitly requested; a missing
	// file is then an error instead of an empty catalog.
	CatalogSet   bool
	ScenarioRoot string
	OutPath      string // "" writes results to the app's output writer

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config and returns it ready for NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Target == "" {
		return nil, errors.New("Target is a required configuration field and cannot be empty")
	}
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeOrder
	}
	switch cfg.Mode {
	case ModeOrder, ModeGraph, ModeValidate, ModeTrace:
	default:
		return nil, fmt.Errorf("unknown mode %q: must be %q, %q, %q or %q", cfg.Mode, ModeOrder, ModeGraph, ModeValidate, ModeTrace)
	}
	if cfg.ScenarioRoot == "" {
		cfg.ScenarioRoot = "."
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count cannot be negative, got %d", cfg.WorkerCount)
	}
	return &cfg, nil
}
