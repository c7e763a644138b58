package mcp

import (
	"os"
	"testing"

	"github.com/Fuabioo/gzjson"
)

// writeTestDoc writes a gzip-compressed JSON fixture.
func writeTestDoc(t *testing.T, path string, doc any) {
	t.Helper()

	if err := gzjson.Write(path, doc); err != nil {
		t.Fatalf("failed to write test document %s: %v", path, err)
	}
}

// writeRawFile writes arbitrary bytes, for corrupt-file fixtures.
func writeRawFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// setupTestEnvironment sets up a clean test environment with custom data dir.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	os.Setenv("GZJSON_DATA_DIR", tempDir)
	t.Cleanup(func() {
		os.Unsetenv("GZJSON_DATA_DIR")
	})

	return tempDir
}
