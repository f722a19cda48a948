package media

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cblegare/md2pptx/internal/deck"
)

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFileProber_Probe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, dir, "wide.png", 40, 10)
	writeFile(t, dir, "sized.svg", `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="2in" height="48pt"></svg>`)
	writeFile(t, dir, "box.svg", `<svg viewBox="0 0 300 150" width="100%"></svg>`)
	writeFile(t, dir, "broken.png", "not an image")

	tests := []struct {
		name    string
		ref     *deck.MediaRef
		want    Size
		wantErr error
	}{
		{"png", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "wide.png"}, Size{40, 10}, nil},
		{"svg with units", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "sized.svg"}, Size{192, 64}, nil},
		{"svg viewBox", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "box.svg"}, Size{300, 150}, nil},
		{"video default", &deck.MediaRef{Kind: deck.MediaVideo, Source: "https://example.com/a.mp4"}, Size{1024, 768}, nil},
		{"missing", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "nope.png"}, Size{}, ErrMissing},
		{"remote graphic", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "https://example.com/a.png"}, Size{}, ErrRemote},
		{"undecodable", &deck.MediaRef{Kind: deck.MediaGraphic, Source: "broken.png"}, Size{}, ErrUnreadable},
	}

	p := NewFileProber(dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.Probe(context.Background(), tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Probe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSVGLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"100", 100, true},
		{"100px", 100, true},
		{"1in", 96, true},
		{"72pt", 96, true},
		{"50%", 0, false},
		{"", 0, false},
		{"-3", 0, false},
	}

	for _, tt := range tests {
		got, ok := svgLength(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("svgLength(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestProbeAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, dir, "a.png", 20, 10)

	a := &deck.MediaRef{Kind: deck.MediaGraphic, Source: "a.png"}
	missing := &deck.MediaRef{Kind: deck.MediaGraphic, Source: "missing.png"}
	doc := &deck.Document{Slides: []*deck.Slide{
		{Number: 1, Tables: []*deck.TableGrid{{
			Rows:  [][]string{{"![a](a.png)", "![m](missing.png)"}},
			Media: [][]*deck.MediaRef{{a, missing}},
		}}},
		{Number: 2, Cards: []*deck.Card{{Title: "c", Graphic: a}}},
	}}

	sizes, diags, err := ProbeAll(context.Background(), NewFileProber(dir), doc, 2)
	if err != nil {
		t.Fatalf("ProbeAll() error = %v", err)
	}

	if diff := cmp.Diff(Sizes{"a.png": {20, 10}}, sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	warnings := diags.Of(deck.WarnMedia)
	if len(warnings) != 1 || warnings[0].Slide != 1 {
		t.Errorf("warnings = %v, want one on slide 1", warnings)
	}

	w, h, ok := sizes.NaturalSize(a)
	if !ok || w != 20 || h != 10 {
		t.Errorf("NaturalSize(a) = %d, %d, %v", w, h, ok)
	}
	if _, _, ok := sizes.NaturalSize(missing); ok {
		t.Error("NaturalSize(missing) should not be known")
	}
}

func TestProbeAll_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := &deck.Document{Slides: []*deck.Slide{
		{Number: 1, Cards: []*deck.Card{{Graphic: &deck.MediaRef{Kind: deck.MediaGraphic, Source: "x.png"}}}},
	}}
	if _, _, err := ProbeAll(ctx, NewFileProber(""), doc, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("ProbeAll() error = %v, want context.Canceled", err)
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()

	a := &deck.MediaRef{Source: "a.png"}
	b := &deck.MediaRef{Source: "b.png"}
	doc := &deck.Document{Slides: []*deck.Slide{
		{Number: 1, Cards: []*deck.Card{{Graphic: a}, {Graphic: a}}},
		{Number: 2, Tables: []*deck.TableGrid{{Media: [][]*deck.MediaRef{{nil, b}}}}},
	}}

	got := References(doc)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("References() = %v, want [a b]", got)
	}
}
