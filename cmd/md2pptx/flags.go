package main

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// masterFlags selects the slide master.
type masterFlags struct {
	name      string
	assetPath string
}

// outputFlags holds output destination and format flags.
type outputFlags struct {
	path      string
	wireframe bool
	dpi       float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common       commonFlags
	output       outputFlags
	master       masterFlags
	workers      int
	probeWorkers int
	set          []string // name=value style overrides
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addMasterFlags adds slide master flags to a FlagSet.
func addMasterFlags(fs *flag.FlagSet, f *masterFlags) {
	fs.StringVarP(&f.name, "master", "m", "", "slide master name (default \"default\")")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory searched for masters/<name>.yaml")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output directory")
	fs.BoolVar(&f.wireframe, "wireframe", false, "also write a PNG wireframe per slide")
	fs.Float64Var(&f.dpi, "dpi", 0, "wireframe pixel density (0 = 96)")
}

// newConvertFlagSet registers every convert flag. Parsing and shell
// completion both read flags from it.
func newConvertFlagSet() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "files converted in parallel (0 = auto)")
	fs.IntVar(&f.probeWorkers, "probe-workers", 0, "concurrent media probes per file (0 = default)")
	fs.StringArrayVar(&f.set, "set", nil, "style override name=value (repeatable)")

	addCommonFlags(fs, &f.common)
	addMasterFlags(fs, &f.master)
	addOutputFlags(fs, &f.output)

	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet()
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether args request verbose output. It runs
// before flag parsing, so it only recognizes the plain spellings.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return true
		}
	}
	return false
}

// parseOverride splits a --set value at its first "=".
func parseOverride(s string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", false
	}
	return name, value, true
}
