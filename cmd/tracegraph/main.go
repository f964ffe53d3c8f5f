package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/uesim/tracegraph/internal/app"
	"github.com/uesim/tracegraph/internal/cli"
	"github.com/uesim/tracegraph/internal/hcl"
)

// main is the entrypoint for the tracegraph application.
func main() {
	// A .env file supplies TRACEGRAPH_* defaults before flags are read.
	_ = godotenv.Load()

	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCodeFor(err))
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Results go to outW, logs to logW.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// Programmer errors at startup, like a module registering the same
	// handler twice, surface as panics. Recover into a plain error so the
	// process still exits through the normal path.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl.NewLoader()
	tracerApp, err := app.NewApp(logW, outW, appConfig, loader)
	if err != nil {
		return err
	}

	return tracerApp.Run(context.Background())
}
