package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cblegare/md2pptx/internal/config"
	"github.com/cblegare/md2pptx/internal/logger"
)

const envPrefix = "MD2PPTX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // MD2PPTX_CONFIG: config file name or path
	Master       string // MD2PPTX_MASTER: slide master name
	AssetPath    string // MD2PPTX_ASSET_PATH: custom master directory
	InputDir     string // MD2PPTX_INPUT_DIR: default input directory
	OutputDir    string // MD2PPTX_OUTPUT_DIR: default output directory
	Workers      int    // MD2PPTX_WORKERS: files converted in parallel
	ProbeWorkers int    // MD2PPTX_PROBE_WORKERS: concurrent media probes
}

// knownEnvVars lists valid MD2PPTX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PPTX_CONFIG":        true,
	"MD2PPTX_MASTER":        true,
	"MD2PPTX_ASSET_PATH":    true,
	"MD2PPTX_INPUT_DIR":     true,
	"MD2PPTX_OUTPUT_DIR":    true,
	"MD2PPTX_WORKERS":       true,
	"MD2PPTX_PROBE_WORKERS": true,
}

// envVarNames returns the known variable names, sorted.
func envVarNames() []string {
	names := make([]string, 0, len(knownEnvVars))
	for name := range knownEnvVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2PPTX_CONFIG"),
		Master:     getenv("MD2PPTX_MASTER"),
		AssetPath:  getenv("MD2PPTX_ASSET_PATH"),
		InputDir:   getenv("MD2PPTX_INPUT_DIR"),
		OutputDir:  getenv("MD2PPTX_OUTPUT_DIR"),
	}
	cfg.Workers = positiveInt(getenv("MD2PPTX_WORKERS"))
	cfg.ProbeWorkers = positiveInt(getenv("MD2PPTX_PROBE_WORKERS"))
	return cfg
}

func positiveInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return 0
}

// warnUnknownEnvVars logs unrecognized MD2PPTX_* variables, which are
// usually typos.
func warnUnknownEnvVars(environ []string, log *logger.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Master != "" && cfg.Master.Name == "" {
		cfg.Master.Name = env.Master
	}
	if env.AssetPath != "" && cfg.Master.BasePath == "" {
		cfg.Master.BasePath = env.AssetPath
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ProbeWorkers > 0 && cfg.Media.Workers == 0 {
		cfg.Media.Workers = env.ProbeWorkers
	}
}
