// Package output is where generated site files go.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer stores a generated file at a path relative to the output root.
type Writer interface {
	WriteFile(relPath string, data []byte) error
}

// DirWriter writes under a root directory on the local file system,
// creating parent directories as needed. Existing files are overwritten.
type DirWriter struct {
	Root string
}

func NewDirWriter(root string) *DirWriter {
	return &DirWriter{Root: root}
}

func (w *DirWriter) WriteFile(relPath string, data []byte) error {
	path := w.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0775)); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, os.FileMode(0664)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Path returns the absolute location relPath is written to.
func (w *DirWriter) Path(relPath string) string {
	return filepath.Join(w.Root, filepath.FromSlash(relPath))
}
