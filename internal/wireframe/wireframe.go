package wireframe

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/cblegare/md2pptx/internal/codeblock"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/layout"
)

// DefaultDPI is the number of pixels drawn per slide inch.
const DefaultDPI = 96

const (
	lineHeight = 13
	charWidth  = 7
	textInset  = 3
)

// Box colours.
var (
	colorBackground = color.White
	colorTitle      = color.RGBA{R: 0xdd, G: 0xe8, B: 0xf6, A: 0xff}
	colorBlock      = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	colorCard       = color.RGBA{R: 0xe6, G: 0xf2, B: 0xe6, A: 0xff}
	colorGraphic    = color.RGBA{R: 0xfc, G: 0xe8, B: 0xc8, A: 0xff}
	colorCode       = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	colorTOC        = color.RGBA{R: 0xd0, G: 0xdc, B: 0xf0, A: 0xff}
	colorOutline    = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	colorText       = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Renderer draws slide layouts.
type Renderer struct {
	dpi   float64
	style string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDPI sets the pixel density. Non-positive values are ignored.
func WithDPI(dpi float64) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithCodeStyle sets the chroma style used to colour code runs.
func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = name
		}
	}
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{dpi: DefaultDPI, style: codeblock.DefaultStyle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// px converts an EMU length to pixels.
func (r *Renderer) px(e deck.EMU) float64 {
	return e.Inches() * r.dpi
}

// Size returns the pixel dimensions of a slide.
func (r *Renderer) Size(sl *layout.SlideLayout) (int, int) {
	return int(r.px(sl.Width)), int(r.px(sl.Height))
}

// Render draws one slide.
func (r *Renderer) Render(sl *layout.SlideLayout) (image.Image, error) {
	w, h := r.Size(sl)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("slide %d has no area", sl.Number)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineWidth(1)

	if sl.Title != nil {
		r.textBox(dc, sl.Title, colorTitle)
	}
	if sl.Subtitle != nil {
		r.textBox(dc, sl.Subtitle, colorTitle)
	}
	for _, b := range sl.Blocks {
		r.block(dc, b)
	}
	if sl.TOC != nil {
		r.toc(dc, sl.TOC)
	}
	for _, f := range sl.Footers {
		r.label(dc, f.Rect, f.Text)
	}
	if sl.Hidden {
		dc.SetColor(colorOutline)
		dc.DrawString("hidden", textInset, float64(h-textInset))
	}
	return dc.Image(), nil
}

// WritePNG draws one slide and encodes it to w.
func (r *Renderer) WritePNG(w io.Writer, sl *layout.SlideLayout) error {
	img, err := r.Render(sl)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

func (r *Renderer) rect(dc *gg.Context, rect deck.Rectangle, fill color.Color) {
	if rect.Empty() {
		return
	}
	x, y := r.px(rect.Left), r.px(rect.Top)
	w, h := r.px(rect.Width), r.px(rect.Height)
	dc.DrawRectangle(x, y, w, h)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(colorOutline)
	dc.Stroke()
}

// label writes text in the top left corner of rect, one line per "\n".
func (r *Renderer) label(dc *gg.Context, rect deck.Rectangle, text string) {
	if rect.Empty() || text == "" {
		return
	}
	dc.SetColor(colorText)
	x, y := r.px(rect.Left)+textInset, r.px(rect.Top)+lineHeight
	bottom := r.px(rect.Bottom())
	for _, line := range strings.Split(text, "\n") {
		if y > bottom {
			return
		}
		dc.DrawString(line, x, y)
		y += lineHeight
	}
}

func (r *Renderer) textBox(dc *gg.Context, tb *layout.TextBox, fill color.Color) {
	r.rect(dc, tb.Rect, fill)
	r.label(dc, tb.Rect, tb.Text)
}

func (r *Renderer) block(dc *gg.Context, b *layout.Block) {
	if b.Skipped {
		return
	}
	switch {
	case b.List != nil:
		r.rect(dc, b.List.Bullets, colorBlock)
		for _, c := range b.List.Cards {
			r.rect(dc, c.Background, colorCard)
			r.rect(dc, c.Title, colorTitle)
			if c.Graphic != nil {
				r.rect(dc, *c.Graphic, colorGraphic)
			}
		}
		dc.SetColor(colorOutline)
		for _, s := range b.List.Dividers {
			dc.DrawLine(r.px(s.X1), r.px(s.Y1), r.px(s.X2), r.px(s.Y2))
			dc.Stroke()
		}
	case b.Table != nil:
		for _, c := range b.Table.Cells {
			fill := color.Color(colorBackground)
			if b.Table.Header && c.Row == 0 {
				fill = colorTitle
			}
			r.rect(dc, c.Rect, fill)
			r.label(dc, c.Rect, c.Text)
		}
		if b.Table.Caption != nil {
			r.label(dc, b.Table.Caption.Rect, b.Table.Caption.Text)
		}
	case b.Grid != nil:
		for _, t := range b.Grid.Tiles {
			r.rect(dc, t.Rect, colorGraphic)
			if t.Media != nil {
				r.label(dc, t.Rect, string(t.Media.Kind)+" "+t.Media.Source)
			}
		}
	case b.Code != nil:
		r.code(dc, b.Code)
	default:
		r.rect(dc, b.Rect, colorBlock)
	}
}

func (r *Renderer) code(dc *gg.Context, c *layout.CodeLayout) {
	r.rect(dc, c.Rect, colorCode)
	if c.Info.Diagram() {
		r.label(dc, c.Rect, string(c.Info.Kind))
		return
	}

	lines := copyLines(c.Lines)
	codeblock.Highlight(lines, r.style)

	y := r.px(c.Rect.Top) + lineHeight
	bottom := r.px(c.Rect.Bottom())
	for _, line := range lines {
		if y > bottom {
			return
		}
		x := r.px(c.Rect.Left) + textInset
		for _, run := range line {
			dc.SetColor(colorText)
			if run.Colour != "" {
				dc.SetHexColor(run.Colour)
			}
			dc.DrawString(run.Text, x, y)
			x += float64(len([]rune(run.Text)) * charWidth)
		}
		y += lineHeight
	}
}

func (r *Renderer) toc(dc *gg.Context, g *layout.TOCGrid) {
	for _, item := range g.Items {
		if item.Rect.Empty() {
			continue
		}
		fill := color.Color(colorTOC)
		if item.Current {
			fill = colorBackground
		}
		x, y := r.px(item.Rect.Left), r.px(item.Rect.Top)
		w, h := r.px(item.Rect.Width), r.px(item.Rect.Height)
		if g.Style == "circle" {
			dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(colorOutline)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(item.Label, x+w/2, y+h/2, 0.5, 0.5)
	}
}

// copyLines returns lines with fresh run slices so highlighting does not
// touch the layout.
func copyLines(lines []codeblock.Line) []codeblock.Line {
	out := make([]codeblock.Line, len(lines))
	for i, l := range lines {
		out[i] = append(codeblock.Line(nil), l...)
	}
	return out
}
