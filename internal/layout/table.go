package layout

import (
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

// GridClass is the result of classifying a TableGrid.
type GridClass string

// Grid classes.
const (
	ClassRuled    GridClass = "ruled"
	ClassGraphics GridClass = "graphics"
)

// maxRowHeight caps the height of a ruled table row.
var maxRowHeight = deck.Inches(0.25)

// Classify decides whether a grid is drawn as a graphics grid or as a
// ruled table. A graphics grid has one or two rows of one or two cells,
// and every cell is a media reference.
func Classify(g *deck.TableGrid) GridClass {
	if g == nil || g.Empty() || len(g.Rows) > 2 {
		return ClassRuled
	}
	for r, row := range g.Rows {
		if len(row) == 0 || len(row) > 2 {
			return ClassRuled
		}
		for c := range row {
			if g.MediaAt(r, c) == nil {
				return ClassRuled
			}
		}
	}
	return ClassGraphics
}

// RuledTable lays out g inside r. Columns are sized by their relative
// widths and rows are capped at a quarter inch. With spanCells set, a run
// of empty cells merges into the non-empty cell before it.
func RuledTable(g *deck.TableGrid, r deck.Rectangle, st *options.Style) *TableLayout {
	rows, cols := len(g.Rows), g.Columns()
	inset := deck.Inches(st.TableMargin) - deck.Inches(st.MarginBase)
	out := &TableLayout{
		Rect:    deck.Rectangle{Top: r.Top, Left: r.Left + inset, Width: r.Width - 2*inset},
		Rows:    rows,
		Columns: cols,
		Header:  g.Header,
	}
	if rows == 0 || cols == 0 {
		out.Rect.Width = 0
		return out
	}

	out.Rect.Height = min(r.Height, maxRowHeight*deck.EMU(rows))
	out.RowHeight = out.Rect.Height / deck.EMU(rows)

	var total int64
	for c := range cols {
		total += int64(g.Weight(c))
	}
	out.ColumnWidths = make([]deck.EMU, cols)
	for c := range cols {
		out.ColumnWidths[c] = deck.EMU(int64(out.Rect.Width) * int64(g.Weight(c)) / total)
	}

	for row := range rows {
		font := st.BaseTextSize
		if st.CompactTables > 0 {
			font = st.CompactTables
		}
		if row == 0 && st.TableHeadingSize > 0 {
			font = st.TableHeadingSize
		}

		top := out.Rect.Top + out.RowHeight*deck.EMU(row)
		left := out.Rect.Left
		anchor := -1
		for col := range cols {
			text := g.Cell(row, col)
			width := out.ColumnWidths[col]
			if text == "" && st.SpanCells && anchor >= 0 {
				out.Cells[anchor].Span++
				out.Cells[anchor].Rect.Width += width
				left += width
				continue
			}
			out.Cells = append(out.Cells, Cell{
				Row:      row,
				Col:      col,
				Span:     1,
				Text:     text,
				Align:    g.Alignment(col),
				FontSize: font,
				Rect:     deck.Rectangle{Top: top, Left: left, Height: out.RowHeight, Width: width},
			})
			if text != "" {
				anchor = len(out.Cells) - 1
			}
			left += width
		}
	}

	if g.Caption != "" {
		out.Caption = &TextBox{
			Text:     g.Caption,
			FontSize: st.BaseTextSize,
			Align:    "center",
			Rect: deck.Rectangle{
				Top:    out.Rect.Bottom(),
				Left:   out.Rect.Left,
				Height: deck.Points(st.BaseTextSize + 5),
				Width:  out.Rect.Width,
			},
		}
	}
	return out
}

// layoutGrid places up to four media tiles in r, each scaled into its cell
// and centered there. A row holding a single cell under or over a row of
// two is centered across the whole block. It returns false when a tile's
// natural size is unknown, in which case the whole block is skipped.
func (e *Engine) layoutGrid(g *deck.TableGrid, r deck.Rectangle, st *options.Style) (*GridLayout, bool) {
	rows, cols := len(g.Rows), g.Columns()
	gap := deck.Inches(st.MarginBase)

	cellW, cellH := r.Width, r.Height
	if cols == 2 {
		cellW = (r.Width - gap) / 2
	}
	if rows == 2 {
		cellH = (r.Height - gap) / 2
	}

	out := &GridLayout{Rows: rows, Columns: cols}
	for row, cells := range g.Rows {
		for col := range cells {
			ref := g.MediaAt(row, col)
			w, h, ok := e.naturalSize(ref)
			if !ok {
				return nil, false
			}

			cell := deck.Rectangle{
				Top:    r.Top + deck.EMU(row)*(cellH+gap),
				Left:   r.Left + deck.EMU(col)*(cellW+gap),
				Height: cellH,
				Width:  cellW,
			}
			if cols == 2 && len(cells) == 1 {
				cell.Left = r.Left + (r.Width-cellW)/2
			}
			out.Tiles = append(out.Tiles, Tile{Row: row, Col: col, Media: ref, Rect: fitCentered(cell, w, h)})
		}
	}
	return out, true
}
