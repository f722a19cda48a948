package layout

import (
	"github.com/cblegare/md2pptx/internal/codeblock"
	"github.com/cblegare/md2pptx/internal/deck"
)

// SlideKind is how a slide is laid out.
type SlideKind string

// Slide kinds.
const (
	SlideTitle   SlideKind = "title"
	SlideSection SlideKind = "section"
	SlideContent SlideKind = "content"
	SlideTOC     SlideKind = "toc"
)

// TextBox is positioned text. Lines are separated by "\n".
type TextBox struct {
	Text     string         `yaml:"text"`
	Rect     deck.Rectangle `yaml:"rect"`
	FontSize float64        `yaml:"fontSize"`
	Align    string         `yaml:"align,omitempty"`
}

// SlideLayout is the geometry of one slide.
type SlideLayout struct {
	Number     int            `yaml:"number"`
	Kind       SlideKind      `yaml:"kind"`
	Width      deck.EMU       `yaml:"width"`
	Height     deck.EMU       `yaml:"height"`
	Title      *TextBox       `yaml:"title,omitempty"`
	Subtitle   *TextBox       `yaml:"subtitle,omitempty"`
	Content    deck.Rectangle `yaml:"content"`
	Blocks     []*Block       `yaml:"blocks,omitempty"`
	TOC        *TOCGrid       `yaml:"toc,omitempty"`
	Footers    []Footer       `yaml:"footers,omitempty"`
	Hidden     bool           `yaml:"hidden,omitempty"`
	Transition string         `yaml:"transition,omitempty"`
}

// Block is one content block. Index is the block's position within the
// slide's per-kind slice. Exactly one of List, Table, Grid and Code is set
// unless Skipped.
type Block struct {
	Kind    deck.BlockKind `yaml:"kind"`
	Index   int            `yaml:"index"`
	Rect    deck.Rectangle `yaml:"rect"`
	Skipped bool           `yaml:"skipped,omitempty"`
	List    *ListLayout    `yaml:"list,omitempty"`
	Table   *TableLayout   `yaml:"table,omitempty"`
	Grid    *GridLayout    `yaml:"grid,omitempty"`
	Code    *CodeLayout    `yaml:"code,omitempty"`
}

// ListLayout splits a list block between slide bullets and cards.
type ListLayout struct {
	Bullets  deck.Rectangle `yaml:"bullets"`
	Cards    []*CardLayout  `yaml:"cards,omitempty"`
	Dividers []Segment      `yaml:"dividers,omitempty"`
}

// CardLayout is the geometry of one card. Index refers to Slide.Cards.
// Graphic is nil when the card shows no media.
type CardLayout struct {
	Index      int             `yaml:"index"`
	Rect       deck.Rectangle  `yaml:"rect"`
	Title      deck.Rectangle  `yaml:"title"`
	Background deck.Rectangle  `yaml:"background"`
	Body       deck.Rectangle  `yaml:"body"`
	Graphic    *deck.Rectangle `yaml:"graphic,omitempty"`
}

// Segment is a straight line between two points.
type Segment struct {
	X1 deck.EMU `yaml:"x1"`
	Y1 deck.EMU `yaml:"y1"`
	X2 deck.EMU `yaml:"x2"`
	Y2 deck.EMU `yaml:"y2"`
}

// TableLayout is a ruled table.
type TableLayout struct {
	Rect         deck.Rectangle `yaml:"rect"`
	Rows         int            `yaml:"rows"`
	Columns      int            `yaml:"columns"`
	Header       bool           `yaml:"header,omitempty"`
	ColumnWidths []deck.EMU     `yaml:"columnWidths"`
	RowHeight    deck.EMU       `yaml:"rowHeight"`
	Cells        []Cell         `yaml:"cells,omitempty"`
	Caption      *TextBox       `yaml:"caption,omitempty"`
}

// Cell is a table cell. Span is the number of columns it covers.
type Cell struct {
	Row      int            `yaml:"row"`
	Col      int            `yaml:"col"`
	Span     int            `yaml:"span"`
	Text     string         `yaml:"text"`
	Align    deck.Alignment `yaml:"align"`
	FontSize float64        `yaml:"fontSize"`
	Rect     deck.Rectangle `yaml:"rect"`
}

// GridLayout is a graphics grid of up to four tiles.
type GridLayout struct {
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
	Tiles   []Tile `yaml:"tiles"`
}

// Tile is one scaled picture or media item of a graphics grid.
type Tile struct {
	Row   int            `yaml:"row"`
	Col   int            `yaml:"col"`
	Media *deck.MediaRef `yaml:"media"`
	Rect  deck.Rectangle `yaml:"rect"`
}

// CodeLayout is a code box. Diagram blocks carry no lines.
type CodeLayout struct {
	Info     codeblock.Info   `yaml:"info"`
	Rect     deck.Rectangle   `yaml:"rect"`
	FontSize float64          `yaml:"fontSize"`
	Lines    []codeblock.Line `yaml:"lines,omitempty"`
}

// TOCGrid is a wrapped grid of table of contents items.
type TOCGrid struct {
	Style    string    `yaml:"style"`
	PerRow   int       `yaml:"perRow"`
	Rows     int       `yaml:"rows"`
	FontSize float64   `yaml:"fontSize"`
	Items    []TOCItem `yaml:"items"`
}

// TOCItem is one entry of a TOC grid. The current entry is drawn unfilled
// and without a link.
type TOCItem struct {
	Label   string         `yaml:"label"`
	Href    string         `yaml:"href,omitempty"`
	Current bool           `yaml:"current,omitempty"`
	Rect    deck.Rectangle `yaml:"rect"`
}

// FooterPosition names one of the three footer boxes.
type FooterPosition string

// Footer positions.
const (
	FooterLeft   FooterPosition = "left"
	FooterMiddle FooterPosition = "middle"
	FooterRight  FooterPosition = "right"
)

// Footer is a positioned footer text box.
type Footer struct {
	Position FooterPosition `yaml:"position"`
	Text     string         `yaml:"text"`
	FontSize float64        `yaml:"fontSize"`
	Rect     deck.Rectangle `yaml:"rect"`
}
