package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/uesim/tracegraph/internal/app"
	"github.com/uesim/tracegraph/internal/planner"
)

// Exit codes of the tracegraph process.
const (
	// ExitFailure covers internal failures such as a failed dry run.
	ExitFailure = 1
	// ExitUsage covers flag errors and semantically invalid requests.
	ExitUsage = 2
	// ExitCycle is returned when the requested work hits a dependency cycle.
	ExitCycle = 3
	// ExitUnknownTarget is returned when the target matches nothing.
	ExitUnknownTarget = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCodeFor maps an error from the app layer onto a process exit code.
func ExitCodeFor(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var usageErr *app.UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	var cycleErr *planner.CycleError
	if errors.As(err, &cycleErr) {
		return ExitCycle
	}
	var targetErr *planner.UnknownTargetError
	if errors.As(err, &targetErr) {
		return ExitUnknownTarget
	}
	return ExitFailure
}

// envOr reads a TRACEGRAPH_* environment default for a flag.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Parse processes command-line arguments. It returns a populated app
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tracegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
TraceGraph - dependency tracer and workflow graph builder for urban energy scenarios.

Usage:
  tracegraph [options] TARGET

Arguments:
  TARGET
    A script name, an artifact key (category/name) or unique artifact
    name, or "all".

Options:
`)
		flagSet.PrintDefaults()
	}

	modeFlag := flagSet.String("mode", "order", "What to produce. Options: 'order', 'graph', 'validate' or 'trace'.")
	configFlag := flagSet.String("config", envOr("TRACEGRAPH_CONFIG", "config"), "Path to the locator catalog, an .hcl file or a directory.")
	modulesFlag := flagSet.String("modules", envOr("TRACEGRAPH_MODULES", "modules"), "Path to the directory containing script manifests.")
	catalogFlag := flagSet.String("catalog", envOr("TRACEGRAPH_CATALOG", "config/catalog.yaml"), "Path to the external/published artifact catalog YAML.")
	scenarioFlag := flagSet.String("scenario", envOr("TRACEGRAPH_SCENARIO", "."), "Scenario root used for path resolution.")
	outFlag := flagSet.String("out", "", "Write the result to a file instead of stdout.")
	workersFlag := flagSet.Int("workers", 0, "Number of parallel dry runs. 0 picks one per CPU.")
	logFormatFlag := flagSet.String("log-format", envOr("TRACEGRAPH_LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr("TRACEGRAPH_LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No target provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("expected exactly one TARGET, got %d arguments", flagSet.NArg())}
	}
	target := flagSet.Arg(0)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	catalogSet := os.Getenv("TRACEGRAPH_CATALOG") != ""
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "catalog" {
			catalogSet = true
		}
	})
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Target:       target,
		Mode:         strings.ToLower(*modeFlag),
		ConfigPath:   *configFlag,
		ModulesPath:  *modulesFlag,
		CatalogPath:  *catalogFlag,
		CatalogSet:   catalogSet,
		ScenarioRoot: *scenarioFlag,
		OutPath:      *outFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "target", config.Target, "mode", config.Mode)
	return config, false, nil
}
