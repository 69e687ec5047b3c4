package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path of a database file in a directory that is
// removed when the test ends. Every call uses a new directory.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "grovesmith.db")
}
