package layout

import (
	"math"

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

// dividerInset is how far a card divider line stops short of the card's
// ends.
var dividerInset = deck.Inches(0.75)

// layoutList places the slide bullets and the cards owned by list block
// list inside r.
func (e *Engine) layoutList(s *deck.Slide, list int, r deck.Rectangle) *ListLayout {
	var owned []int
	for i, c := range s.Cards {
		if c.List == list {
			owned = append(owned, i)
		}
	}
	if len(owned) == 0 {
		return &ListLayout{Bullets: r}
	}

	st := &s.Style
	bullets := r
	bullets.Height = 0
	if list < len(s.Lists) && len(s.Lists[list]) > 0 {
		bullets.Height = deck.EMU(int64(r.Height) * int64(100-st.CardPercent) / 100)
	}
	area := deck.Rectangle{
		Top:    r.Top + bullets.Height,
		Left:   r.Left,
		Height: r.Height - bullets.Height,
		Width:  r.Width,
	}

	out := &ListLayout{Bullets: bullets}
	cards := make([]*deck.Card, len(owned))
	for i, idx := range owned {
		cards[i] = s.Cards[idx]
	}
	for i, c := range CardRects(area, cards, st) {
		c.Index = owned[i]
		if g := s.Cards[owned[i]].Graphic; g != nil {
			if w, h, ok := e.naturalSize(g); ok {
				placeCardGraphic(c, w, h, st)
			}
		}
		out.Cards = append(out.Cards, c)
	}
	if st.CardShape == options.CardShapeLine {
		out.Dividers = cardDividers(out.Cards, st)
	}
	return out
}

// CardTitleHeight returns the height of a card title band: the card title
// size, or two thirds of the page title size, plus a tenth of an inch.
func CardTitleHeight(st *options.Style) deck.EMU {
	var raw deck.EMU
	if st.CardTitleSize > 0 {
		raw = deck.Inches(st.CardTitleSize / 72)
	} else {
		raw = deck.Inches(math.Trunc(10000*st.PageTitleSize*2/3/72) / 10000)
	}
	return raw + deck.Inches(0.1)
}

// CardRects distributes cards evenly over area. Card indices in the result
// are positions in cards. Graphics are not placed.
func CardRects(area deck.Rectangle, cards []*deck.Card, st *options.Style) []*CardLayout {
	n := len(cards)
	if n == 0 {
		return nil
	}

	titleH := deck.EMU(0)
	for _, c := range cards {
		if c.Title != "" && c.Title != deck.BlankTitle {
			titleH = CardTitleHeight(st)
			break
		}
	}

	hGap := deck.Inches(st.HorizontalCardGap)
	var cardW, cardH, padding deck.EMU
	if st.CardLayout == options.CardLayoutVertical {
		cardW = area.Width
		if st.CardTitlePosition == options.CardTitleAbove {
			padding = deck.Inches(st.VerticalCardGap - 0.05)
		} else {
			padding = deck.Inches(st.VerticalCardGap)
		}
		cardH = area.Height/deck.EMU(n) - padding
	} else {
		cardW = (area.Width - hGap*deck.EMU(n-1)) / deck.EMU(n)
		cardH = area.Height
	}

	out := make([]*CardLayout, n)
	for i := range cards {
		c := deck.EMU(i)
		card := deck.Rectangle{Top: area.Top, Left: area.Left, Height: cardH, Width: cardW}
		if st.CardLayout == options.CardLayoutVertical {
			card.Top = area.Top + (cardH+padding)*c
		} else {
			card.Left = area.Left + c*(cardW+hGap)
		}

		l := &CardLayout{
			Index: i,
			Rect:  card,
			Title: deck.Rectangle{Top: card.Top, Left: card.Left, Height: titleH, Width: cardW},
		}
		bodyTop := card.Top
		if st.CardTitlePosition == options.CardTitleInside {
			l.Background = card
			bodyTop += titleH
		} else {
			l.Background = deck.Rectangle{Top: card.Top + titleH, Left: card.Left, Height: cardH - titleH, Width: cardW}
			bodyTop = l.Background.Top
		}
		l.Body = deck.Rectangle{Top: bodyTop, Left: card.Left, Height: cardH - titleH, Width: cardW}
		out[i] = l
	}
	return out
}

// placeCardGraphic makes room in the card body for a graphic band of
// cardGraphicSize and scales the w x h graphic into it.
func placeCardGraphic(c *CardLayout, w, h int, st *options.Style) {
	size := deck.Inches(st.CardGraphicSize)
	pad := deck.Inches(st.CardGraphicPadding)
	bodyH := c.Body.Height
	pw, ph, _ := ScalePicture(size, size, w, h)

	g := deck.Rectangle{Height: ph, Width: pw}
	before := st.CardGraphicPosition != options.CardGraphicAfter

	if st.CardLayout == options.CardLayoutVertical {
		c.Body.Width = c.Rect.Width - 2*pad - size
		if before {
			c.Body.Left = c.Rect.Left + size + 2*pad
			g.Top = c.Body.Top + (bodyH-ph)/2
			g.Left = c.Rect.Left + pad
		} else {
			g.Top = c.Body.Top + (bodyH-size)/2
			g.Left = c.Rect.Left + c.Body.Width + pad
		}
	} else {
		c.Body.Height = bodyH - size - 2*pad
		if before {
			c.Body.Top += size + 2*pad
			g.Top = c.Title.Top + pad + c.Title.Height + (size-ph)/2
		} else {
			g.Top = c.Body.Bottom() + pad
		}
		g.Left = c.Rect.Left + (c.Rect.Width-pw)/2
	}

	if !g.Empty() {
		c.Graphic = &g
	}
}

// cardDividers draws a line between neighbouring cards, halfway across the
// gap.
func cardDividers(cards []*CardLayout, st *options.Style) []Segment {
	var out []Segment
	for i, c := range cards {
		if i == 0 {
			continue
		}
		bg := c.Background
		if st.CardLayout == options.CardLayoutVertical {
			y := bg.Top - deck.Inches(st.VerticalCardGap/2)
			out = append(out, Segment{X1: bg.Left + dividerInset, Y1: y, X2: bg.Right() - dividerInset, Y2: y})
			continue
		}
		x := bg.Left - deck.Inches(st.HorizontalCardGap/2)
		out = append(out, Segment{X1: x, Y1: bg.Top + dividerInset, X2: x, Y2: bg.Bottom() - dividerInset})
	}
	return out
}
