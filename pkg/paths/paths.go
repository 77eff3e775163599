package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for moopad
	EnvConfigDir = "MOOPAD_CONFIG_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for moopad-specific files
	AppDirName = "moopad"

	// DefaultConfigFile is the pipeline configuration looked up by default
	DefaultConfigFile = "moopad.yaml"

	// SettingsFile is the name of the optional user settings file
	SettingsFile = "settings.toml"
)

// ResolveWorkdir turns dir into an absolute path with symlinks evaluated.
// An empty dir means the current directory. A directory that does not
// exist is still made absolute, it just cannot have its symlinks resolved.
func ResolveWorkdir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to make %s absolute: %w", dir, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// ConfigDir returns the directory holding user-level moopad files
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsPath returns the path of the optional user settings file
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFile)
}
