package pit_test

import (
	"os"
	"path/filepath"
	"testing"

	"pit-go/internal/fs"
)

func newTestIgnore() *fs.IgnoreMatcher {
	return fs.NewIgnoreMatcher(".pit", nil)
}

func newOSWorkspace(t *testing.T, root string, ignore *fs.IgnoreMatcher) *fs.OSWorkspace {
	t.Helper()
	ws, err := fs.NewOSWorkspace(root, ignore)
	if err != nil {
		t.Fatalf("NewOSWorkspace() error = %v", err)
	}
	return ws
}

func storageRoot(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".pit")
}

func writeWorkspaceFile(t *testing.T, root, relPath, content string) error {
	t.Helper()
	dest := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(content), 0644)
}
