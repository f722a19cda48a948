package layout

import (
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

// Split divides region into n blocks along direction, in proportion to
// the first n weights. Missing weights count as 1. When every weight is
// zero the blocks are equal. A single block gets the whole region.
func Split(region deck.Rectangle, weights []int, n int, direction string) []deck.Rectangle {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []deck.Rectangle{region}
	}

	w := make([]int64, n)
	var total int64
	for i := range w {
		w[i] = 1
		if i < len(weights) {
			w[i] = int64(max(weights[i], 0))
		}
		total += w[i]
	}
	if total == 0 {
		for i := range w {
			w[i] = 1
		}
		total = int64(n)
	}

	out := make([]deck.Rectangle, n)
	if direction == options.SplitHorizontal {
		left := region.Left
		for i := range out {
			width := deck.EMU(int64(region.Width) * w[i] / total)
			out[i] = deck.Rectangle{Top: region.Top, Left: left, Height: region.Height, Width: width}
			left += width
		}
		return out
	}

	top := region.Top
	for i := range out {
		height := deck.EMU(int64(region.Height) * w[i] / total)
		out[i] = deck.Rectangle{Top: top, Left: region.Left, Height: height, Width: region.Width}
		top += height
	}
	return out
}

// ScalePicture fits a picture of natural size w x h into a maxW x maxH
// box without distortion. The result touches the box on at least one side.
// byHeight reports that the height was the limiting dimension.
//
// Non-positive sizes scale to nothing.
func ScalePicture(maxW, maxH deck.EMU, w, h int) (picW, picH deck.EMU, byHeight bool) {
	if maxW <= 0 || maxH <= 0 || w <= 0 || h <= 0 {
		return 0, 0, false
	}

	heightIfWidthUsed := deck.EMU(int64(maxW) * int64(h) / int64(w))
	if heightIfWidthUsed > maxH {
		return deck.EMU(int64(maxH) * int64(w) / int64(h)), maxH, true
	}
	return maxW, heightIfWidthUsed, false
}

// fitCentered scales a picture into cell and centers it there.
func fitCentered(cell deck.Rectangle, w, h int) deck.Rectangle {
	pw, ph, _ := ScalePicture(cell.Width, cell.Height, w, h)
	return deck.Rectangle{
		Top:    cell.Top + (cell.Height-ph)/2,
		Left:   cell.Left + (cell.Width-pw)/2,
		Height: ph,
		Width:  pw,
	}
}
