package md2pptx

import (
	"fmt"

	"github.com/cblegare/md2pptx/internal/assets"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/layout"
	"github.com/cblegare/md2pptx/internal/media"
	"github.com/cblegare/md2pptx/internal/yamlutil"
)

// DefaultMaster is the embedded 16:9 master.
const DefaultMaster = "default"

// MaxProbeWorkers bounds WithProbeWorkers.
const MaxProbeWorkers = 64

// Input is one conversion request.
type Input struct {
	Markdown  string // Deck source (required)
	SourceDir string // Directory relative media paths are resolved against
}

// Result is a converted deck: the compiled document, one layout per slide
// in document order and the non-fatal problems met along the way.
type Result struct {
	Document    *deck.Document
	Slides      []*layout.SlideLayout
	Master      *assets.Master
	Diagnostics deck.Diagnostics
}

// layoutDump is the serialized form of a Result.
type layoutDump struct {
	Master   string                `yaml:"master"`
	Width    deck.EMU              `yaml:"width"`
	Height   deck.EMU              `yaml:"height"`
	Slides   []*layout.SlideLayout `yaml:"slides"`
	Warnings []deck.Warning        `yaml:"warnings,omitempty"`
}

// MarshalLayout encodes the slide geometry and warnings as YAML.
func (r *Result) MarshalLayout() ([]byte, error) {
	dump := layoutDump{
		Slides:   r.Slides,
		Warnings: r.Diagnostics.Warnings,
	}
	if r.Master != nil {
		dump.Master = r.Master.Name
		dump.Width = r.Master.SlideWidth()
		dump.Height = r.Master.SlideHeight()
	}

	data, err := yamlutil.Marshal(dump)
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return data, nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	masterName   string
	assetPath    string
	probeWorkers int
	overrides    map[string]string
}

// WithMaster selects the slide master by name.
func WithMaster(name string) Option {
	return func(c *Converter) {
		c.cfg.masterName = name
	}
}

// WithAssetPath adds a directory searched for masters before the embedded
// ones. The directory holds masters/<name>.yaml files.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithProber replaces the filesystem media prober. The prober is shared by
// every conversion and must be safe for concurrent use.
func WithProber(p media.Prober) Option {
	return func(c *Converter) {
		c.prober = p
	}
}

// WithProbeWorkers bounds the number of concurrent media probes. Zero
// selects the default.
func WithProbeWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.probeWorkers = n
	}
}

// WithStyleOverrides sets option values applied before each document's own
// metadata, so the document can still override them. Keys are option names
// as written in deck metadata.
func WithStyleOverrides(overrides map[string]string) Option {
	return func(c *Converter) {
		c.cfg.overrides = make(map[string]string, len(overrides))
		for k, v := range overrides {
			c.cfg.overrides[k] = v
		}
	}
}
