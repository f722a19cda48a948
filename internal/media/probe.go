// Package media reads the natural pixel size of the pictures, videos and
// audio clips a deck refers to.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/pipeline"
)

// Sentinel errors for probing.
var (
	ErrMissing    = errors.New("media file not found")
	ErrRemote     = errors.New("remote media is not fetched")
	ErrUnreadable = errors.New("cannot read media size")
)

// Size is a natural size in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Prober reads the natural size of one media reference.
type Prober interface {
	Probe(ctx context.Context, ref *deck.MediaRef) (Size, error)
}

// FileProber reads sizes from local files. Relative sources are resolved
// against BaseDir.
type FileProber struct {
	BaseDir string
}

// NewFileProber creates a FileProber rooted at baseDir.
func NewFileProber(baseDir string) *FileProber {
	return &FileProber{BaseDir: baseDir}
}

// Probe returns the natural size of ref. Video and audio sizes come from
// the tag, or from the defaults when the tag declares none.
func (p *FileProber) Probe(ctx context.Context, ref *deck.MediaRef) (Size, error) {
	if err := ctx.Err(); err != nil {
		return Size{}, err
	}
	if w, h, ok := pipeline.NaturalSize(ref); ok {
		return Size{Width: w, Height: h}, nil
	}
	if IsRemote(ref.Source) {
		return Size{}, fmt.Errorf("%w: %s", ErrRemote, ref.Source)
	}

	path := p.resolve(ref.Source)
	f, err := os.Open(path) // #nosec G304 -- path comes from the deck author
	if err != nil {
		if os.IsNotExist(err) {
			return Size{}, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return Size{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgSize(f)
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("%w: %s has no extent", ErrUnreadable, path)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

func (p *FileProber) resolve(source string) string {
	if filepath.IsAbs(source) || p.BaseDir == "" {
		return source
	}
	return filepath.Join(p.BaseDir, source)
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Compile-time interface check.
var _ Prober = (*FileProber)(nil)
