package layout

import (
	"strings"

	"github.com/cblegare/md2pptx/internal/assets"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
	"github.com/cblegare/md2pptx/internal/pipeline"
)

// titleGap separates a content slide's title from its body.
var titleGap = deck.Inches(0.1)

// NaturalSizer looks up the natural pixel size of a media reference.
type NaturalSizer interface {
	NaturalSize(ref *deck.MediaRef) (w, h int, ok bool)
}

// Engine lays out slides on a master.
type Engine struct {
	master *assets.Master
	sizer  NaturalSizer
}

// New creates an Engine. sizer may be nil, in which case only video and
// audio references, whose sizes are known without probing, are placed.
func New(master *assets.Master, sizer NaturalSizer) *Engine {
	return &Engine{master: master, sizer: sizer}
}

// LayoutDocument lays out every slide of doc in order.
func (e *Engine) LayoutDocument(doc *deck.Document) ([]*SlideLayout, deck.Diagnostics) {
	var diags deck.Diagnostics
	out := make([]*SlideLayout, 0, len(doc.Slides))
	for _, s := range doc.Slides {
		l, d := e.Layout(s, doc.TOC)
		diags.Merge(d)
		out = append(out, l)
	}
	return out, diags
}

// Layout computes the geometry of one slide. toc holds the entries drawn
// by TOC grid slides.
func (e *Engine) Layout(s *deck.Slide, toc []deck.TOCEntry) (*SlideLayout, deck.Diagnostics) {
	var diags deck.Diagnostics
	st := &s.Style
	out := &SlideLayout{
		Number:     s.Number,
		Width:      e.master.SlideWidth(),
		Height:     e.master.SlideHeight(),
		Hidden:     st.Hidden,
		Transition: st.Transition,
	}

	switch {
	case gridTOC(s):
		out.Kind = SlideTOC
		var titleBottom deck.EMU
		if s.TOC == deck.TOCContents {
			out.Title, titleBottom = contentTitle(s, out.Width)
		}
		out.Content = ContentRect(out.Width, out.Height, titleBottom, st)
		out.TOC = layoutTOC(s, toc, out.Content)

	case s.Type == deck.BlockTitle:
		out.Kind = SlideTitle
		out.Title, out.Subtitle = placeholders(s, e.master.Title, st.PresTitleSize, st.PresSubtitleSize)

	case s.Type == deck.BlockSection:
		out.Kind = SlideSection
		out.Title, out.Subtitle = placeholders(s, e.master.Section, st.SectionTitleSize, st.SectionSubtitleSize)

	default:
		out.Kind = SlideContent
		var titleBottom deck.EMU
		out.Title, titleBottom = contentTitle(s, out.Width)
		out.Content = ContentRect(out.Width, out.Height, titleBottom, st)
		out.Blocks = e.layoutBlocks(s, out.Content, &diags)
	}

	out.Footers = Footers(s, out.Width, out.Height)
	return out, diags
}

// ContentRect returns the body rectangle of a slide: inside the side
// margins, below the title (or the top margin when titleBottom is zero) and
// above the larger of the margin and the slide number band.
func ContentRect(width, height, titleBottom deck.EMU, st *options.Style) deck.Rectangle {
	m := deck.Inches(st.MarginBase)
	top := titleBottom + m
	if titleBottom == 0 {
		top = m
	}
	return deck.Rectangle{
		Top:    top,
		Left:   m,
		Height: height - top - max(m, deck.Inches(st.NumbersHeight)),
		Width:  width - 2*m,
	}
}

// contentTitle positions a content slide title. Lines after the first are
// set at the subtitle size. A blank title gives no box and a zero bottom.
func contentTitle(s *deck.Slide, width deck.EMU) (*TextBox, deck.EMU) {
	if !s.HasTitle() {
		return nil, 0
	}
	st := &s.Style
	m := deck.Inches(st.MarginBase)
	lines := strings.Split(s.Title, "<br/>")
	height := deck.Points(st.PageTitleSize) + deck.Points(st.SubtitleSize())*deck.EMU(len(lines)-1)

	box := &TextBox{
		Text:     strings.Join(lines, "\n"),
		FontSize: st.PageTitleSize,
		Align:    st.PageTitleAlign,
		Rect:     deck.Rectangle{Top: m, Left: m, Height: height, Width: width - 2*m},
	}
	return box, box.Rect.Bottom() + titleGap
}

// placeholders fills the master's title and subtitle boxes. The subtitle
// box is omitted when the slide has none.
func placeholders(s *deck.Slide, p assets.Placeholders, titleSize, subtitleSize float64) (*TextBox, *TextBox) {
	title := &TextBox{
		Text:     strings.ReplaceAll(s.Title, "<br/>", "\n"),
		FontSize: titleSize,
		Align:    "center",
		Rect:     p.Title.Rect(),
	}
	if s.Subtitle == "" {
		return title, nil
	}
	return title, &TextBox{
		Text:     strings.ReplaceAll(s.Subtitle, "<br/>", "\n"),
		FontSize: subtitleSize,
		Align:    "center",
		Rect:     p.Subtitle.Rect(),
	}
}

// layoutBlocks splits the content area between the slide's blocks in
// sequence order. Blocks past MaxBlocks are dropped with a warning.
func (e *Engine) layoutBlocks(s *deck.Slide, content deck.Rectangle, diags *deck.Diagnostics) []*Block {
	st := &s.Style
	n := min(len(s.Sequence), options.MaxBlocks)
	if len(s.Sequence) > options.MaxBlocks {
		diags.Warn(deck.WarnLayout, s.Line, s.Number, "%d content blocks; only the first %d are shown", len(s.Sequence), options.MaxBlocks)
	}

	rects := Split(content, st.ContentSplit, n, st.ContentSplitDirection)
	blocks := make([]*Block, 0, n)
	for i, r := range rects {
		b := &Block{Kind: s.Sequence[i], Index: s.BlockIndex(i), Rect: r}
		if b.Index >= s.CountKind(b.Kind) {
			b.Skipped = true
			blocks = append(blocks, b)
			continue
		}

		switch b.Kind {
		case deck.KindList:
			b.List = e.layoutList(s, b.Index, r)
		case deck.KindTable:
			g := s.Tables[b.Index]
			if Classify(g) == ClassGraphics {
				grid, ok := e.layoutGrid(g, r, st)
				b.Grid = grid
				b.Skipped = !ok
			} else {
				b.Table = RuledTable(g, r, st)
			}
		case deck.KindCode:
			b.Code = layoutCode(s, s.Code[b.Index], r, diags)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// naturalSize returns the size of a media reference. Video and audio sizes
// come from their tags; graphics are looked up in the sizer.
func (e *Engine) naturalSize(ref *deck.MediaRef) (int, int, bool) {
	if ref == nil {
		return 0, 0, false
	}
	if w, h, ok := pipeline.NaturalSize(ref); ok {
		return w, h, true
	}
	if e.sizer == nil {
		return 0, 0, false
	}
	return e.sizer.NaturalSize(ref)
}
