package deck

import "strings"

// Alignment is a table column's horizontal alignment.
type Alignment string

// Column alignments.
const (
	AlignLeft   Alignment = "l"
	AlignCenter Alignment = "c"
	AlignRight  Alignment = "r"
)

// TableGrid is a neutral grid of cells. Both ruled tables and graphics
// grids use it; layout decides which one a grid is.
//
// Alignments and Widths come from the optional alignment row, which is
// removed from Rows once parsed. Media is parallel to Rows and holds the
// parsed reference of every cell that is a single media item.
type TableGrid struct {
	Rows       [][]string    `yaml:"rows"`
	Alignments []Alignment   `yaml:"alignments,omitempty"`
	Widths     []int         `yaml:"widths,omitempty"`
	Header     bool          `yaml:"header,omitempty"` // an alignment row followed the first row
	Caption    string        `yaml:"caption,omitempty"`
	Media      [][]*MediaRef `yaml:"-"`
}

// Columns returns the width of the widest row.
func (g *TableGrid) Columns() int {
	n := 0
	for _, r := range g.Rows {
		n = max(n, len(r))
	}
	return n
}

// Cell returns the trimmed text of a cell, or "" past the end of a row.
func (g *TableGrid) Cell(row, col int) string {
	if row >= len(g.Rows) || col >= len(g.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(g.Rows[row][col])
}

// MediaAt returns the media reference of a cell, or nil.
func (g *TableGrid) MediaAt(row, col int) *MediaRef {
	if row >= len(g.Media) || col >= len(g.Media[row]) {
		return nil
	}
	return g.Media[row][col]
}

// Alignment returns the alignment of a column, defaulting to left.
func (g *TableGrid) Alignment(col int) Alignment {
	if col < len(g.Alignments) && g.Alignments[col] != "" {
		return g.Alignments[col]
	}
	return AlignLeft
}

// Empty reports whether the grid holds no rows.
func (g *TableGrid) Empty() bool { return len(g.Rows) == 0 }

// Weight returns the relative width of a column, defaulting to 1.
func (g *TableGrid) Weight(col int) int {
	if col < len(g.Widths) && g.Widths[col] > 0 {
		return g.Widths[col]
	}
	return 1
}

// MediaKind distinguishes the three media reference forms.
type MediaKind string

// Media kinds.
const (
	MediaGraphic MediaKind = "graphic"
	MediaVideo   MediaKind = "video"
	MediaAudio   MediaKind = "audio"
)

// MediaRef is a parsed image, video or audio reference.
//
// Width and Height are the declared size from tag attributes, or zero.
// The natural size used for scaling is probed separately.
type MediaRef struct {
	Kind   MediaKind `yaml:"kind"`
	Source string    `yaml:"source"`
	Title  string    `yaml:"title,omitempty"`
	Href   string    `yaml:"href,omitempty"`
	Poster string    `yaml:"poster,omitempty"`
	Width  int       `yaml:"width,omitempty"`
	Height int       `yaml:"height,omitempty"`
}

// Remote reports whether the source is a URL rather than a local path.
func (m *MediaRef) Remote() bool {
	return strings.Contains(m.Source, "://")
}
