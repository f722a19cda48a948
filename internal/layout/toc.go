package layout

import (
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

// TOCItemSize returns the item size, the gap between items and the font
// size of a TOC grid style. Chevrons overlap by half their height.
func TOCItemSize(st *options.Style) (w, h, gap deck.EMU, font float64) {
	h = deck.Inches(st.TOCItemHeight)
	switch st.TOCStyle {
	case options.TOCStyleChevron:
		if h == 0 {
			h = deck.Inches(1)
		}
		w = h * 5 / 2
		gap = -h / 2
		font = 14
	default:
		if h == 0 {
			h = deck.Inches(1.25)
		}
		w = h
		gap = deck.Inches(0.5)
		font = 12
	}
	if st.TOCFontSize > 0 {
		font = st.TOCFontSize
	}
	return w, h, gap, font
}

// WrapGrid places n items of w x h in rows across area. Items advance by
// w+gap and wrap when a row is full, moving down by h+rowGap. The whole
// grid is centered in area.
func WrapGrid(n int, w, h, gap, rowGap deck.EMU, area deck.Rectangle) (perRow, rows int, rects []deck.Rectangle) {
	if n <= 0 {
		return 0, 0, nil
	}

	perRow = 1
	if step := w + gap; step > 0 {
		perRow = max(int(area.Width/step), 1)
	}
	rows = (n + perRow - 1) / perRow

	cols := min(perRow, n)
	gridW := deck.EMU(cols)*(w+gap) - gap
	gridH := deck.EMU(rows)*h + deck.EMU(rows-1)*rowGap
	left := area.Left + (area.Width-gridW)/2
	top := area.Top + (area.Height-gridH)/2

	rects = make([]deck.Rectangle, n)
	for i := range rects {
		row, col := i/perRow, i%perRow
		rects[i] = deck.Rectangle{
			Top:    top + deck.EMU(row)*(h+rowGap),
			Left:   left + deck.EMU(col)*(w+gap),
			Height: h,
			Width:  w,
		}
	}
	return perRow, rows, rects
}

// layoutTOC draws the contents grid. The entry naming this slide is marked
// current.
func layoutTOC(s *deck.Slide, entries []deck.TOCEntry, area deck.Rectangle) *TOCGrid {
	st := &s.Style
	w, h, gap, font := TOCItemSize(st)
	perRow, rows, rects := WrapGrid(len(entries), w, h, gap, deck.Inches(st.TOCRowGap), area)

	out := &TOCGrid{Style: st.TOCStyle, PerRow: perRow, Rows: rows, FontSize: font}
	for i, e := range entries {
		current := e.Label == s.Title
		item := TOCItem{Label: e.Label, Current: current, Rect: rects[i]}
		if !current {
			item.Href = e.Href
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// gridTOC reports whether a slide's TOC role is drawn as a grid.
func gridTOC(s *deck.Slide) bool {
	if s.TOC == deck.TOCNone {
		return false
	}
	return s.Style.TOCStyle == options.TOCStyleChevron || s.Style.TOCStyle == options.TOCStyleCircle
}
