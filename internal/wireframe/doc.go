// Package wireframe draws slide layouts as PNG previews.
//
// A wireframe shows the boxes computed by the layout engine: title and
// subtitle placeholders, content blocks, cards, table cells, graphics
// tiles, TOC items and footers. Code blocks are drawn with their
// highlighted runs. Text is drawn with a fixed bitmap face and is not
// wrapped, so a wireframe is a geometry check rather than a rendering of
// the final deck.
package wireframe
