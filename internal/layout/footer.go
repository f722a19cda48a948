package layout

import (
	"strings"

	"github.com/cblegare/md2pptx/internal/deck"
)

const defaultFooterSize = 8

var (
	leftFooterMargin  = deck.Inches(0.5)
	rightFooterMargin = deck.Inches(0.25)
)

// Footers places the three footer boxes along the bottom of the slide.
// Empty footer texts are omitted, and title and section slides carry no
// footers unless sectionFooters is set.
func Footers(s *deck.Slide, width, height deck.EMU) []Footer {
	st := &s.Style
	if (s.Type == deck.BlockTitle || s.Type == deck.BlockSection) && !st.SectionFooters {
		return nil
	}

	font := st.FooterFontSize
	if font <= 0 {
		font = defaultFooterSize
	}
	top := height - deck.Inches(st.NumbersHeight)/2 - deck.Points(font)
	boxH := 2 * deck.Points(font)
	third := width / 3

	boxes := []struct {
		pos   FooterPosition
		text  string
		left  deck.EMU
		width deck.EMU
	}{
		{FooterLeft, st.LeftFooterText, leftFooterMargin, third - leftFooterMargin},
		{FooterMiddle, st.MiddleFooterText, third, third},
		{FooterRight, st.RightFooterText, 2 * third, third - rightFooterMargin},
	}

	var out []Footer
	for _, b := range boxes {
		if b.text == "" {
			continue
		}
		out = append(out, Footer{
			Position: b.pos,
			Text:     SubstituteFooter(b.text, s.Context),
			FontSize: font,
			Rect:     deck.Rectangle{Top: top, Left: b.left, Height: boxH, Width: b.width},
		})
	}
	return out
}

// SubstituteFooter replaces <section>, <presTitle> and <presSubtitle> with
// the first line of the matching context value. Numbered forms such as
// <section2> select a later line. <br/> becomes a newline.
func SubstituteFooter(text string, ctx deck.Context) string {
	vars := []struct {
		name  string
		value string
	}{
		{"section", ctx.Section},
		{"presTitle", ctx.PresTitle},
		{"presSubtitle", ctx.PresSubtitle},
	}

	for _, v := range vars {
		lines := strings.Split(strings.TrimSpace(v.value), "<br/>")
		text = strings.ReplaceAll(text, "<"+v.name+">", lines[0])
		text = strings.ReplaceAll(text, "<"+v.name+"1>", lines[0])
		for i, tag := range []string{"2", "3"} {
			if i+1 < len(lines) {
				text = strings.ReplaceAll(text, "<"+v.name+tag+">", lines[i+1])
			}
		}
	}
	return strings.ReplaceAll(text, "<br/>", "\n")
}
