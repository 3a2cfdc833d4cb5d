// Package testutil provides testing utilities for genx.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempConfig writes a genx config file with the given YAML content and
// returns its path.
func TempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := writeFile(path, content); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	return path
}

// TempCorpusPath returns a path for a corpus database that does not exist yet.
func TempCorpusPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "corpus.db")
}

// IsolateConfigDir points the default config location at an empty directory
// so tests never read the user's config.
func IsolateConfigDir(t *testing.T) {
	t.Helper()
	t.Setenv("GENX_CONFIG_DIR", t.TempDir())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// SmallConfig is a config with a fixed seed and small sizes.
const SmallConfig = `
min_successful_tests: 10
max_size: 3
seed: 11
`
