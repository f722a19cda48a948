// Package config loads the command line configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cblegare/md2pptx/internal/fileutil"
	"github.com/cblegare/md2pptx/internal/hints"
	"github.com/cblegare/md2pptx/internal/options"
	"github.com/cblegare/md2pptx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxMasterNameLength = 100
	MaxStyleValueLength = 500
)

// MaxWorkers bounds media.workers.
const MaxWorkers = 64

// MaxWireframeDPI bounds output.wireframeDPI.
const MaxWireframeDPI = 600

// Output formats.
const (
	FormatYAML      = "yaml"
	FormatWireframe = "wireframe"
	FormatBoth      = "both"
)

// Config holds the command line defaults.
type Config struct {
	Input  InputConfig       `yaml:"input"`
	Output OutputConfig      `yaml:"output"`
	Master MasterConfig      `yaml:"master"`
	Style  map[string]string `yaml:"style"`
	Media  MediaConfig       `yaml:"media"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // yaml, wireframe or both (default: yaml)

	WireframeDPI float64 `yaml:"wireframeDPI"` // 0 = 96
	CodeStyle    string  `yaml:"codeStyle"`    // chroma style for wireframe code
}

// MasterConfig selects the slide master.
type MasterConfig struct {
	Name     string `yaml:"name"`     // Empty = default
	BasePath string `yaml:"basePath"` // Empty = embedded masters only
}

// MediaConfig tunes media probing.
type MediaConfig struct {
	Workers int `yaml:"workers"` // 0 = automatic
}

// WantYAML reports whether the layout dump should be written.
func (o OutputConfig) WantYAML() bool {
	return o.Format == "" || o.Format == FormatYAML || o.Format == FormatBoth
}

// WantWireframe reports whether PNG previews should be written.
func (o OutputConfig) WantWireframe() bool {
	return o.Format == FormatWireframe || o.Format == FormatBoth
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	switch c.Output.Format {
	case "", FormatYAML, FormatWireframe, FormatBoth:
	default:
		return fmt.Errorf("%w: output.format %q (must be yaml, wireframe, or both)", ErrInvalidField, c.Output.Format)
	}
	if c.Output.WireframeDPI < 0 || c.Output.WireframeDPI > MaxWireframeDPI {
		return fmt.Errorf("%w: output.wireframeDPI must be between 0 and %d, got %g", ErrInvalidField, MaxWireframeDPI, c.Output.WireframeDPI)
	}
	if err := validateFieldLength("output.codeStyle", c.Output.CodeStyle, MaxMasterNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("master.name", c.Master.Name, MaxMasterNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("master.basePath", c.Master.BasePath, MaxPathLength); err != nil {
		return err
	}

	for _, key := range c.StyleKeys() {
		if !options.IsOption(key) {
			return fmt.Errorf("%w: style.%s%s", options.ErrUnknownOption, key, hints.ForOption())
		}
		if err := validateFieldLength("style."+key, c.Style[key], MaxStyleValueLength); err != nil {
			return err
		}
	}

	if c.Media.Workers < 0 || c.Media.Workers > MaxWorkers {
		return fmt.Errorf("%w: media.workers must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Media.Workers)
	}
	return nil
}

// StyleKeys returns the style override names in sorted order, which is the
// order they are applied in.
func (c *Config) StyleKeys() []string {
	keys := make([]string, 0, len(c.Style))
	for k := range c.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that writes YAML next to the source
// with the embedded default master.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatYAML},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, hints.ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(paths, ", "), hints.ForConfigNotFound(paths))
}
