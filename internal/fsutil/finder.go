// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension and returns their full paths in walk
// order. The extension may be given with or without the leading dot.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// EnsureDir creates the directory and any missing parents. It is a no-op if
// the directory already exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
