package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/uesim/tracegraph/internal/hcl"
	"github.com/uesim/tracegraph/internal/registry"
	"github.com/uesim/tracegraph/internal/testutil"
)

// SetupAppTest creates a fully wired app instance for system testing.
// Results land in the returned output buffer, logs in the safe buffer.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	outBuffer := &bytes.Buffer{}
	cfg.LogLevel = "debug"

	testApp, err := NewApp(logBuffer, outBuffer, cfg, hcl.NewLoader(), modules...)
	if err != nil {
		t.Fatalf("failed to construct app under test: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("TRACEGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
