package md2pptx

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cblegare/md2pptx/internal/assets"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/layout"
	"github.com/cblegare/md2pptx/internal/media"
	"github.com/cblegare/md2pptx/internal/options"
	"github.com/cblegare/md2pptx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.LineNormalizer = (*pipeline.MarkdownNormalizer)(nil)
	_ pipeline.Compiler       = (*pipeline.DocumentCompiler)(nil)
	_ pipeline.Resolver       = (*pipeline.LinkResolver)(nil)
	_ media.Prober            = (*media.FileProber)(nil)
	_ layout.NaturalSizer     = media.Sizes(nil)
)

// Converter turns Markdown decks into slide geometry.
// A Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg        converterConfig
	master     *assets.Master
	normalizer pipeline.LineNormalizer
	compiler   pipeline.Compiler
	resolver   pipeline.Resolver
	prober     media.Prober // nil = filesystem prober rooted at Input.SourceDir
}

// NewConverter creates a Converter using the default master.
// Returns an error if the master cannot be loaded or a style override is
// invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:        converterConfig{masterName: DefaultMaster},
		normalizer: &pipeline.MarkdownNormalizer{},
		resolver:   &pipeline.LinkResolver{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.probeWorkers < 0 || c.cfg.probeWorkers > MaxProbeWorkers {
		return nil, fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkers, c.cfg.probeWorkers, MaxProbeWorkers)
	}

	master, err := loadMaster(c.cfg.assetPath, c.cfg.masterName)
	if err != nil {
		return nil, err
	}
	c.master = master

	base, err := applyOverrides(options.DefaultStyle(), c.cfg.overrides)
	if err != nil {
		return nil, err
	}
	c.compiler = &pipeline.DocumentCompiler{Base: base}

	return c, nil
}

// Master returns the slide master the converter lays out on.
func (c *Converter) Master() *assets.Master {
	return c.master
}

// Convert compiles, resolves, probes and lays out a deck.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.compile(ctx, input)
	if err != nil {
		return nil, err
	}

	sizes, probeDiags, err := media.ProbeAll(ctx, c.proberFor(input), doc, c.cfg.probeWorkers)
	if err != nil {
		return nil, fmt.Errorf("probing media: %w", err)
	}

	slides, layoutDiags := layout.New(c.master, sizes).LayoutDocument(doc)

	res := &Result{
		Document: doc,
		Slides:   slides,
		Master:   c.master,
	}
	res.Diagnostics.Merge(doc.Diagnostics)
	res.Diagnostics.Merge(probeDiags)
	res.Diagnostics.Merge(layoutDiags)
	return res, nil
}

// Compile runs the pipeline up to link resolution and returns the
// compiled document without laying it out.
func (c *Converter) Compile(ctx context.Context, input Input) (doc *deck.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return c.compile(ctx, input)
}

func (c *Converter) compile(ctx context.Context, input Input) (*deck.Document, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	normalized, err := c.normalizer.Normalize(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("normalizing markdown: %w", err)
	}

	doc, err := c.compiler.Compile(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("compiling slides: %w", err)
	}

	if err := c.resolver.Resolve(ctx, doc); err != nil {
		return nil, fmt.Errorf("resolving links: %w", err)
	}
	return doc, nil
}

func (c *Converter) proberFor(input Input) media.Prober {
	if c.prober != nil {
		return c.prober
	}
	return media.NewFileProber(input.SourceDir)
}

// loadMaster resolves a master through the custom directory, if any, and
// the embedded masters.
func loadMaster(assetPath, name string) (*assets.Master, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	master, err := resolver.LoadMaster(name)
	switch {
	case errors.Is(err, assets.ErrMasterNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return nil, fmt.Errorf("%w: %q", ErrMasterNotFound, name)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaster, err)
	}
	return master, nil
}

// ListMasters returns the master names available with the given custom
// asset directory, which may be empty.
func ListMasters(assetPath string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver.ListMasters()
}

// applyOverrides sets overrides on base in key order.
func applyOverrides(base options.Style, overrides map[string]string) (options.Style, error) {
	if len(overrides) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	store := options.NewStore(base)
	for _, k := range keys {
		if err := store.SetPresentation(k, overrides[k]); err != nil {
			return options.Style{}, fmt.Errorf("%w: %s: %v", ErrInvalidOption, k, err)
		}
	}
	return store.Presentation(), nil
}
