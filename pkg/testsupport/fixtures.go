// Package testsupport provides fixture helpers shared by the package
// tests.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles writes each relative path → content pair under dir, creating
// parent directories. Callers pass a directory rooted in t.TempDir so
// cleanup is automatic.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", rel, err)
		}
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
