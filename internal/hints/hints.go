// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ConfigDirName is the per-user configuration directory name.
const ConfigDirName = "md2pptx"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == ConfigDirName {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMasterNotFound lists the masters that can be used instead.
func ForMasterNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available masters: " + strings.Join(available, ", "))
}

// ForAssetPath returns hints for an unusable custom asset directory.
func ForAssetPath() string {
	return format("--asset-path must be a readable directory holding masters/<name>.yaml")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOption returns hints for unknown or malformed --set overrides.
func ForOption() string {
	return format("use --set name=value with an option name from the metadata table")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
