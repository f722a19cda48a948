package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

var (
	bulletLine    = regexp.MustCompile(`^(\s*)(\*)(.*)`)
	numberedLine  = regexp.MustCompile(`^(\s*)(\d+)\.(.*)`)
	titleHref     = regexp.MustCompile(`(.+)\[(.+)\]$`)
	anchorLine    = regexp.MustCompile(`^<a id=["'](.+?)["']></a>`)
	directiveLine = regexp.MustCompile(`^<!-- md2pptx: (.+?): (.+) -->`)
	tocLink       = regexp.MustCompile(`^\[(.+)\]\((.+)\)`)
	alignmentCell = regexp.MustCompile(`^:?-+:?$`)
)

// horizontalRule is the heading a rule line is rewritten to.
const horizontalRule = "### " + deck.BlankTitle

// Compiler turns normalized lines into a document.
type Compiler interface {
	Compile(ctx context.Context, in *Normalized) (*deck.Document, error)
}

// DocumentCompiler runs the heading, list, table, card and code state
// machine. Base is the style before metadata is applied.
type DocumentCompiler struct {
	Base options.Style
}

// Compile builds the document's slides and registries. Option problems are
// recorded as warnings; only context cancellation fails the run.
func (c *DocumentCompiler) Compile(ctx context.Context, in *Normalized) (*deck.Document, error) {
	doc := &deck.Document{
		Metadata:   in.Metadata,
		Footnotes:  in.Footnotes,
		References: in.References,
		Glossary:   in.Abbreviations,
		Hrefs:      make(map[string]int),
	}
	doc.Diagnostics.Merge(in.Diagnostics)

	store := options.NewStore(c.Base)
	for _, m := range in.Metadata {
		if !options.IsOption(m.Key) {
			continue
		}
		if err := store.SetPresentation(m.Key, m.Value); err != nil {
			doc.Diagnostics.Warn(deck.WarnOption, m.Line, 0, "%v", err)
		}
	}

	st := &compileState{doc: doc, store: store, lastTableLine: -2}
	for i, line := range in.Lines {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		st.index = i
		st.line = line.Num
		st.feed(line.Text)
	}
	st.finish()
	doc.Style = store.Current()

	return doc, nil
}

// compileState is the accumulator of one compilation.
type compileState struct {
	doc   *deck.Document
	store *options.Store

	slide *deck.Slide
	card  *deck.Card
	table *deck.TableGrid
	code  *deck.CodeBlock

	inList         bool
	inTable        bool
	inCard         bool
	inTitle        bool
	inFencedCode   bool
	inHTMLCode     bool
	inIndentedCode bool

	index         int
	line          int
	lastTableLine int
	pendingAnchor string
	context       deck.Context
}

// feed dispatches one normalized line.
func (s *compileState) feed(text string) {
	if text == IgnoredLine {
		return
	}
	indent := s.store.Current().IndentSpaces
	text = strings.ReplaceAll(strings.TrimRight(text, " \t"), "\t", strings.Repeat(" ", indent))
	trimmed := strings.TrimSpace(text)

	if s.feedCode(text, trimmed) {
		return
	}

	switch {
	case hasAnyPrefix(trimmed, "<hr", "---", "***", "___") && isRule(trimmed):
		s.heading(horizontalRule)

	case strings.HasPrefix(text, "- "):
		s.task(text)

	case strings.HasPrefix(text, "<a id="):
		s.anchor(text)

	case strings.HasPrefix(text, DirectivePrefix):
		s.directive(text)

	case strings.HasPrefix(text, "#"):
		s.heading(text)

	case bulletLine.MatchString(text):
		m := bulletLine.FindStringSubmatchIndex(text)
		s.bullet(m[4], text[m[6]:m[7]], deck.Bulleted)

	case numberedLine.MatchString(text):
		m := numberedLine.FindStringSubmatchIndex(text)
		s.bullet(m[4], text[m[6]:m[7]], deck.Numbered)

	case isMediaLine(trimmed):
		s.media(trimmed)

	case strings.HasPrefix(text, "|"):
		s.tableRow(text)

	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") && s.index == s.lastTableLine+1:
		if s.table != nil {
			s.table.Caption = text[1 : len(text)-1]
		}

	default:
		s.text(text)
	}
}

// feedCode handles lines that open, continue or close a code block. It
// reports whether the line was consumed.
func (s *compileState) feedCode(text, trimmed string) bool {
	switch {
	case s.inFencedCode:
		if strings.HasPrefix(text, "```") {
			s.closeCode()
			return true
		}
		s.code.Lines = append(s.code.Lines, text)
		return true

	case s.inHTMLCode:
		if hasAnyPrefix(trimmed, "</pre>", "</code>") {
			s.closeCode()
			return true
		}
		s.code.Lines = append(s.code.Lines, stripCodeTags(text))
		return true

	case s.inIndentedCode:
		if strings.HasPrefix(text, "    ") {
			s.code.Lines = append(s.code.Lines, text[4:])
			return true
		}
		s.closeCode()
		return false
	}

	switch {
	case strings.HasPrefix(text, "```"):
		s.openCode(text)
		s.inFencedCode = true
		return true

	case hasAnyPrefix(trimmed, "<pre>", "<code>"):
		opener := "<pre>"
		if strings.HasPrefix(trimmed, "<code>") {
			opener = "<code>"
		}
		s.openCode(opener)
		rest := stripCodeTags(strings.TrimPrefix(trimmed, opener))
		closed := hasAnySuffix(trimmed, "</pre>", "</code>")
		if rest != "" {
			s.code.Lines = append(s.code.Lines, rest)
		}
		if closed {
			s.closeCode()
		} else {
			s.inHTMLCode = true
		}
		return true

	case strings.HasPrefix(text, "    ") && !s.inList:
		s.openCode("    ")
		s.code.Lines = append(s.code.Lines, text[4:])
		s.inIndentedCode = true
		return true
	}
	return false
}

func (s *compileState) openCode(opener string) {
	s.ensureSlide()
	s.code = &deck.CodeBlock{Lines: []string{opener}}
	s.slide.Code = append(s.slide.Code, s.code)
	s.slide.Sequence = append(s.slide.Sequence, deck.KindCode)
	s.slide.Type = deck.BlockCode
	s.endTable()
	s.inList = false
	s.inCard = false
	s.card = nil
	s.inTitle = false
}

func (s *compileState) closeCode() {
	s.code = nil
	s.inFencedCode = false
	s.inHTMLCode = false
	s.inIndentedCode = false
}

// task records a taskpaper line against the slide it appears on.
func (s *compileState) task(text string) {
	s.inTitle = false
	t := deck.Task{Slide: len(s.doc.Slides) + 1}
	if s.slide != nil {
		t.Slide = s.slide.Number
	}

	body := text[2:]
	if at := strings.Index(body, "@"); at >= 0 {
		t.Text = strings.TrimSpace(body[:at])
	} else {
		t.Text = strings.TrimSpace(body)
	}
	t.Due = taskAttribute(body, "due")
	t.Tags = taskAttribute(body, "tags")
	t.Done = taskAttribute(body, "done")
	s.doc.Tasks = append(s.doc.Tasks, t)
}

func taskAttribute(body, name string) string {
	marker := "@" + name + "("
	start := strings.Index(body, marker)
	if start < 0 {
		return ""
	}
	start += len(marker)
	end := strings.Index(body[start:], ")")
	if end < 0 {
		return ""
	}
	return body[start : start+end]
}

// anchor registers an explicit <a id> target for the next slide.
func (s *compileState) anchor(text string) {
	s.inTitle = false
	m := anchorLine.FindStringSubmatch(text)
	if m == nil {
		return
	}
	s.pendingAnchor = m[1]
}

// directive applies an inline option change from this point forward.
func (s *compileState) directive(text string) {
	s.inTitle = false
	m := directiveLine.FindStringSubmatch(text)
	if m == nil {
		s.warn(deck.WarnOption, "malformed directive %q", text)
		return
	}
	key := strings.TrimSpace(m[1])
	value := strings.TrimSpace(m[2])
	if err := s.store.SetDynamic(key, value); err != nil {
		s.warn(deck.WarnOption, "%v", err)
		return
	}
	if s.slide != nil && s.slideIsEmpty() {
		s.slide.Style = s.store.Current()
	}
}

// slideIsEmpty reports whether the open slide has no content yet, so a
// directive right after its heading still applies to it.
func (s *compileState) slideIsEmpty() bool {
	return len(s.slide.Sequence) == 0 && len(s.slide.Cards) == 0
}

// heading opens a card or a new slide.
func (s *compileState) heading(text string) {
	style := s.store.Current()
	level := len(text) - len(strings.TrimLeft(text, "#"))
	title, href := parseTitle(text[level:])

	if level >= style.CardLevel() {
		s.openCard(title, href)
		return
	}

	s.closeSlide()

	kind := deck.BlockContent
	s.inTitle = false
	switch {
	case level >= style.ContentLevel():
		kind = deck.BlockContent
	case level == style.SectionLevel():
		kind = deck.BlockSection
		s.inTitle = true
	default:
		kind = deck.BlockTitle
		s.inTitle = true
	}

	if href == "" {
		href = s.pendingAnchor
	}
	s.pendingAnchor = ""
	s.openSlide(title, href, kind)
}

// parseTitle splits "Title [ref]" into its text and heading reference.
func parseTitle(raw string) (title, href string) {
	raw = strings.TrimRight(strings.TrimRight(strings.TrimSpace(raw), "#"), " \t")
	if m := titleHref.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return raw, ""
}

func (s *compileState) openSlide(title, href string, kind deck.BlockType) {
	s.slide = &deck.Slide{
		Number: len(s.doc.Slides) + 1,
		Line:   s.line,
		Title:  title,
		Type:   kind,
		Style:  s.store.Current(),
	}
	s.doc.Slides = append(s.doc.Slides, s.slide)
	s.register(href, s.slide.Number)

	if s.slide.Style.TOCStyle != "" {
		switch {
		case kind == deck.BlockSection:
			s.slide.TOC = deck.TOCSection
		case kind != deck.BlockTitle && title == s.slide.Style.TOCTitle:
			s.slide.TOC = deck.TOCContents
		}
	}
}

// ensureSlide opens an untitled content slide for content that appears
// before the first heading.
func (s *compileState) ensureSlide() {
	if s.slide == nil {
		s.openSlide(deck.BlankTitle, "", deck.BlockContent)
	}
}

func (s *compileState) openCard(title, href string) {
	s.ensureSlide()
	if !s.inList {
		s.openList()
	}
	s.card = &deck.Card{List: len(s.slide.Lists) - 1, Title: title, Href: href}
	s.slide.Cards = append(s.slide.Cards, s.card)
	s.register(href, s.slide.Number)
	s.inCard = true
	s.inTitle = false
}

// register records a heading reference; redefinitions warn and keep the
// first target.
func (s *compileState) register(href string, slide int) {
	if href == "" {
		return
	}
	if prev, ok := s.doc.Hrefs[href]; ok {
		s.warnSlide(deck.WarnDuplicateRef, slide, "heading reference %q redefined (first on slide %d)", href, prev)
		return
	}
	s.doc.Hrefs[href] = slide
}

// closeSlide freezes the open slide.
func (s *compileState) closeSlide() {
	if s.slide == nil {
		return
	}
	s.endTable()
	s.closeCode()

	switch s.slide.Type {
	case deck.BlockTitle:
		if s.context.PresTitle == "" {
			s.context.PresTitle = s.slide.Title
			s.context.PresSubtitle = s.slide.Subtitle
		}
	case deck.BlockSection:
		s.context.Section = s.slide.Title
	}
	s.slide.Context = s.context

	if s.slide.TOC == deck.TOCContents {
		for _, b := range s.slide.Bullets() {
			if b.Level != 0 {
				continue
			}
			entry := deck.TOCEntry{Label: b.Text}
			if m := tocLink.FindStringSubmatch(b.Text); m != nil {
				entry = deck.TOCEntry{Label: m[1], Href: strings.TrimPrefix(m[2], "#")}
			}
			s.doc.TOC = append(s.doc.TOC, entry)
		}
	}

	s.slide.Notes = strings.TrimSpace(s.slide.Notes)
	s.slide = nil
	s.card = nil
	s.inList = false
	s.inCard = false
	s.inTable = false
	s.inTitle = false
}

func (s *compileState) finish() {
	if s.pendingAnchor != "" && len(s.doc.Slides) > 0 {
		s.register(s.pendingAnchor, len(s.doc.Slides))
	}
	s.closeSlide()
}

func (s *compileState) openList() {
	s.endTable()
	s.slide.Sequence = append(s.slide.Sequence, deck.KindList)
	s.slide.Lists = append(s.slide.Lists, nil)
	s.inList = true
}

func (s *compileState) bullet(column int, text string, kind deck.BulletKind) {
	s.ensureSlide()
	if !s.inList {
		s.openList()
	}
	b := deck.Bullet{
		Level: column / max(1, s.store.Current().IndentSpaces),
		Text:  strings.TrimLeft(text, " "),
		Kind:  kind,
	}
	if s.inCard && s.card != nil {
		s.card.Bullets = append(s.card.Bullets, b)
	} else {
		last := len(s.slide.Lists) - 1
		s.slide.Lists[last] = append(s.slide.Lists[last], b)
	}
	s.inTitle = false
}

// media places a media line on the open card, or adds a row to a graphics
// grid.
func (s *compileState) media(trimmed string) {
	s.ensureSlide()
	s.inTitle = false

	if s.inCard && s.card != nil {
		ref := ParseMedia(trimmed)
		if ref == nil {
			s.warn(deck.WarnMedia, "unrecognised media reference %q", trimmed)
			return
		}
		s.card.Graphic = ref
		return
	}

	cells := splitMediaRow(trimmed)
	if len(cells) == 0 {
		s.warn(deck.WarnMedia, "unrecognised media reference %q", trimmed)
		return
	}
	if !s.inTable {
		s.openTable()
	}
	s.table.Rows = append(s.table.Rows, cells)
	s.lastTableLine = s.index
}

func (s *compileState) openTable() {
	s.inList = false
	s.inCard = false
	s.card = nil
	s.table = &deck.TableGrid{}
	s.slide.Tables = append(s.slide.Tables, s.table)
	s.slide.Sequence = append(s.slide.Sequence, deck.KindTable)
	s.slide.Type = deck.BlockTable
	s.inTable = true
}

func (s *compileState) tableRow(text string) {
	s.ensureSlide()
	s.inTitle = false
	if !s.inTable {
		s.openTable()
	}

	cells := strings.Split(text, "|")[1:]
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	s.table.Rows = append(s.table.Rows, cells)
	s.lastTableLine = s.index
}

// endTable finishes the open table: it consumes the alignment row and
// parses every media cell.
func (s *compileState) endTable() {
	if !s.inTable || s.table == nil {
		s.inTable = false
		return
	}
	finishTable(s.table)
	s.inTable = false
}

// finishTable reads the alignment and width row, removes it from the data
// rows and records media references per cell.
func finishTable(g *deck.TableGrid) {
	if len(g.Rows) > 1 && isAlignmentRow(g.Rows[1]) {
		for _, cell := range g.Rows[1] {
			cell = strings.TrimSpace(cell)
			a := deck.AlignLeft
			switch {
			case strings.HasPrefix(cell, ":") && strings.HasSuffix(cell, ":"):
				a = deck.AlignCenter
			case strings.HasSuffix(cell, ":"):
				a = deck.AlignRight
			}
			g.Alignments = append(g.Alignments, a)
			g.Widths = append(g.Widths, max(1, strings.Count(cell, "-")))
		}
		g.Rows = append(g.Rows[:1], g.Rows[2:]...)
		g.Header = true
	}

	g.Media = make([][]*deck.MediaRef, len(g.Rows))
	for r, row := range g.Rows {
		g.Media[r] = make([]*deck.MediaRef, len(row))
		for c, cell := range row {
			g.Media[r][c] = ParseMedia(cell)
		}
	}
}

// isAlignmentRow reports whether every cell of a row is a dash run with
// optional colons.
func isAlignmentRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if !alignmentCell.MatchString(strings.TrimSpace(cell)) {
			return false
		}
	}
	return true
}

// text handles subtitle and note lines.
func (s *compileState) text(text string) {
	s.endTable()
	if s.slide == nil {
		return
	}
	if text == "" {
		s.inTitle = false
		return
	}
	if s.inTitle {
		if s.slide.Subtitle == "" {
			s.slide.Subtitle = text
		} else {
			s.slide.Subtitle += "\n" + text
		}
		return
	}
	if s.slide.Notes != "" {
		s.slide.Notes += "\n"
	}
	s.slide.Notes += text
}

func (s *compileState) warn(kind deck.WarningKind, format string, args ...any) {
	slide := 0
	if s.slide != nil {
		slide = s.slide.Number
	}
	s.doc.Diagnostics.Warn(kind, s.line, slide, format, args...)
}

func (s *compileState) warnSlide(kind deck.WarningKind, slide int, format string, args ...any) {
	s.doc.Diagnostics.Warn(kind, s.line, slide, format, args...)
}

// isRule reports whether a trimmed line is a horizontal rule.
func isRule(trimmed string) bool {
	if strings.HasPrefix(trimmed, "<hr") {
		return true
	}
	compact := strings.ReplaceAll(trimmed, " ", "")
	if len(compact) < 3 || !strings.ContainsRune("-*_", rune(compact[0])) {
		return false
	}
	return strings.Trim(compact, compact[:1]) == ""
}

func stripCodeTags(s string) string {
	for _, tag := range []string{"<pre>", "</pre>", "<code>", "</code>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
