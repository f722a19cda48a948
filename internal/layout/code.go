package layout

import (
	"github.com/cblegare/md2pptx/internal/codeblock"
	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

// longCodeLines is the line count from which code is set smaller.
const longCodeLines = 20

// CodeBox sizes a code box of n lines in r. The font is the base text size
// reduced by 1.2, or 1.5 for long blocks. The box is as wide as codeColumns
// characters at that font; when that does not fit the font shrinks instead.
// The height allows baseTextSize+5 points per line, capped at the block.
func CodeBox(n int, r deck.Rectangle, st *options.Style) (deck.Rectangle, float64) {
	divisor := 1.2
	if n >= longCodeLines {
		divisor = 1.5
	}
	font := float64(int64(float64(deck.Points(st.BaseTextSize)) / divisor))

	box := r
	if r.Width > 0 {
		cols := float64(st.CodeColumns)
		estimate := font * cols / float64(r.Width) / st.FixedPitchRatio
		if estimate > 1 {
			font /= estimate
		} else {
			box.Width = deck.EMU(font * cols / st.FixedPitchRatio)
		}
	}
	box.Height = min(deck.EMU(n)*deck.Points(st.BaseTextSize+5), r.Height)

	return box, font / float64(deck.EMUPerPoint)
}

// layoutCode classifies a code block and sizes its box. Diagram blocks take
// the whole block. Literal blocks are tokenized for highlighting; a lexer
// failure keeps the text unhighlighted and is reported.
func layoutCode(s *deck.Slide, cb *deck.CodeBlock, r deck.Rectangle, diags *deck.Diagnostics) *CodeLayout {
	info := codeblock.Classify(cb.Opener())
	out := &CodeLayout{Info: info, Rect: r, FontSize: s.Style.BaseTextSize}
	if info.Diagram() {
		return out
	}

	body := cb.Body()
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	out.Rect, out.FontSize = CodeBox(len(body), r, &s.Style)

	lines, err := codeblock.Tokenize(info.Language, body)
	if err != nil {
		diags.Warn(deck.WarnCode, s.Line, s.Number, "%v; shown without highlighting", err)
		lines = make([]codeblock.Line, len(body))
		for i, text := range body {
			if text != "" {
				lines[i] = codeblock.Line{{Text: text}}
			}
		}
	}
	out.Lines = lines
	return out
}
