package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cblegare/md2pptx"
	"github.com/cblegare/md2pptx/internal/config"
	"github.com/cblegare/md2pptx/internal/hints"
	"github.com/cblegare/md2pptx/internal/logger"
)

// ErrInvalidOverride indicates a --set value without "name=value" form.
var ErrInvalidOverride = errors.New("invalid style override")

// runConvert converts the decks named by positional args or the config's
// input directory.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	log, err := env.NewLogger(flags.common.verbose, flags.common.quiet)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), log)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	log.Debug("slide master loaded", "master", conv.Master().Name)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("no markdown files found", "input", inputPath)
		return nil
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := md2pptx.ResolvePoolSize(workers)
	start := env.Now()
	log.Debug("starting conversion", "files", len(files), "workers", poolSize)

	results := convertBatch(ctx, conv, poolSize, files, outputs{
		yaml:      cfg.Output.WantYAML(),
		wireframe: cfg.Output.WantWireframe(),
		dpi:       cfg.Output.WireframeDPI,
		codeStyle: cfg.Output.CodeStyle,
	})
	logDiagnostics(results, log)
	log.Info("conversion finished", "files", len(files), "elapsed", env.Now().Sub(start))

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// loadConfig loads the named config, or the defaults when no name is given
// by flag or environment.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// mergeFlags applies CLI flags over config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.master.name != "" {
		cfg.Master.Name = flags.master.name
	}
	if flags.master.assetPath != "" {
		cfg.Master.BasePath = flags.master.assetPath
	}
	if flags.output.path != "" {
		cfg.Output.DefaultDir = flags.output.path
	}
	if flags.probeWorkers != 0 {
		cfg.Media.Workers = flags.probeWorkers
	}
	if flags.output.wireframe && cfg.Output.Format != config.FormatWireframe {
		cfg.Output.Format = config.FormatBoth
	}
	if flags.output.dpi != 0 {
		cfg.Output.WireframeDPI = flags.output.dpi
	}

	for _, s := range flags.set {
		name, value, ok := parseOverride(s)
		if !ok {
			return fmt.Errorf("%w: %q (want name=value)", ErrInvalidOverride, s)
		}
		if cfg.Style == nil {
			cfg.Style = make(map[string]string)
		}
		cfg.Style[name] = value
	}
	return nil
}

// newConverter builds the library converter from the merged config and
// attaches a hint to setup errors.
func newConverter(cfg *config.Config) (*md2pptx.Converter, error) {
	opts := []md2pptx.Option{
		md2pptx.WithAssetPath(cfg.Master.BasePath),
		md2pptx.WithProbeWorkers(cfg.Media.Workers),
		md2pptx.WithStyleOverrides(cfg.Style),
	}
	if cfg.Master.Name != "" {
		opts = append(opts, md2pptx.WithMaster(cfg.Master.Name))
	}

	conv, err := md2pptx.NewConverter(opts...)
	switch {
	case err == nil:
		return conv, nil
	case errors.Is(err, md2pptx.ErrMasterNotFound):
		available, _ := md2pptx.ListMasters(cfg.Master.BasePath)
		return nil, fmt.Errorf("%w%s", err, hints.ForMasterNotFound(available))
	case errors.Is(err, md2pptx.ErrInvalidAssetPath):
		return nil, fmt.Errorf("%w%s", err, hints.ForAssetPath())
	case errors.Is(err, md2pptx.ErrInvalidOption):
		return nil, fmt.Errorf("%w%s", err, hints.ForOption())
	}
	return nil, err
}

// resolveInputPath picks the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// logDiagnostics reports every conversion warning as a structured log entry.
func logDiagnostics(results []ConversionResult, log *logger.Logger) {
	for _, r := range results {
		fileLog := log.With("file", r.InputPath)
		for _, w := range r.Warnings {
			kv := []any{"kind", string(w.Kind)}
			if w.Slide > 0 {
				kv = append(kv, "slide", w.Slide)
			}
			if w.Line > 0 {
				kv = append(kv, "line", w.Line)
			}
			fileLog.Warn(w.Message, kv...)
		}
	}
}
