// Package paths resolves where radgraph keeps its per-directory configuration.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDirName is the directory holding radgraph settings.
	ConfigDirName = ".radgraph"
	// ConfigFileName is the settings file inside ConfigDirName.
	ConfigFileName = "config.toml"
)

// ConfigDir returns <base>/.radgraph.
func ConfigDir(base string) string {
	return filepath.Join(base, ConfigDirName)
}

// ConfigFile returns <base>/.radgraph/config.toml.
func ConfigFile(base string) string {
	return filepath.Join(base, ConfigDirName, ConfigFileName)
}

// EnsureConfigDir creates <base>/.radgraph if needed and returns it.
func EnsureConfigDir(base string) (string, error) {
	dir := ConfigDir(base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// FindBase walks up from start to the nearest directory containing a
// .radgraph directory. If there is none, start itself (made absolute) is
// returned.
func FindBase(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for dir := abs; ; {
		if info, err := os.Stat(ConfigDir(dir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
