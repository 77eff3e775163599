package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Isolate points the user settings directory and the log file at a
// fresh temp dir so tests never read or write the real ones. It returns
// that directory.
func Isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("MOOPAD_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("MOOPAD_LOG_FILE", filepath.Join(dir, "moopad.log"))
	return dir
}

// RequireShell skips the test when /bin/sh is not available
func RequireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteFile creates dir/name with content, creating parent directories,
// and returns its path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
