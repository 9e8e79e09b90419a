// Package testutil provides synthetic profile files for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteProfile writes data to dir/name and returns the path.
func WriteProfile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write profile %s: %v", name, err)
	}
	return path
}

// TempProfile writes data to a fresh temporary directory.
func TempProfile(t *testing.T, name string, data []byte) string {
	t.Helper()
	return WriteProfile(t, t.TempDir(), name, data)
}

// Samples returns n distinct values starting at base, for PA tables.
func Samples(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + float64(i)*0.5
	}
	return out
}
