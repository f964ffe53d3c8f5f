package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles materializes the given path -> content map under a fresh
// temporary directory and returns its root. Parent directories are
// created as needed, so fixtures can describe nested config trees.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create fixture dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture file %s: %v", name, err)
		}
	}
	return root
}
