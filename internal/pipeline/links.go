package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

var tagSeparator = regexp.MustCompile(`[, ]`)

// Resolver runs the link-resolution pass over a compiled document.
type Resolver interface {
	Resolve(ctx context.Context, doc *deck.Document) error
}

// LinkResolver appends the generated footnote, glossary and task slides
// and then resolves every internal link against the heading registry.
type LinkResolver struct{}

// Resolve mutates doc in place. Unresolved links become warnings.
func (r *LinkResolver) Resolve(ctx context.Context, doc *deck.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inline := NewInlineParser(doc.Footnotes, doc.References)
	collectAbbreviations(doc, inline)

	footnotePages := appendFootnoteSlides(doc)
	appendGlossarySlides(doc)
	appendTaskSlides(doc)

	if err := ctx.Err(); err != nil {
		return err
	}

	pageOf := make(map[string]int)
	for i, f := range doc.Footnotes {
		pageOf[f.Ref] = footnotePages[i]
	}

	for _, s := range doc.Slides {
		if s.Origin == deck.GeneratedTasks {
			continue
		}
		for _, text := range slideTexts(s) {
			resolveText(doc, inline, pageOf, s.Number, text)
		}
	}

	for _, e := range doc.TOC {
		if e.Href == "" {
			continue
		}
		if _, ok := doc.Hrefs[e.Href]; !ok {
			doc.Diagnostics.Warn(deck.WarnUnresolvedLink, 0, 0, "table of contents entry %q links to unknown %q", e.Label, e.Href)
		}
	}
	return nil
}

// slideTexts returns every piece of inline text on a slide.
func slideTexts(s *deck.Slide) []string {
	var out []string
	for _, b := range s.Bullets() {
		out = append(out, b.Text)
	}
	for _, c := range s.Cards {
		for _, b := range c.Bullets {
			out = append(out, b.Text)
		}
	}
	for _, t := range s.Tables {
		for r, row := range t.Rows {
			for c := range row {
				if t.MediaAt(r, c) == nil {
					out = append(out, t.Cell(r, c))
				}
			}
		}
	}
	if s.Subtitle != "" {
		out = append(out, s.Subtitle)
	}
	if s.Notes != "" {
		out = append(out, strings.Split(s.Notes, "\n")...)
	}
	return out
}

// resolveText records the internal links of one text.
func resolveText(doc *deck.Document, inline *InlineParser, pageOf map[string]int, from int, text string) {
	for _, run := range inline.Parse(text) {
		switch {
		case run.Footnote != "":
			doc.Links = append(doc.Links, deck.CrossLink{
				Kind: deck.LinkFootnote, From: from, Text: run.Text, Target: run.Footnote, To: pageOf[run.Footnote],
			})

		case strings.HasPrefix(run.Href, "#"):
			target := strings.TrimPrefix(run.Href, "#")
			to, ok := doc.Hrefs[target]
			if !ok {
				doc.Diagnostics.Warn(deck.WarnUnresolvedLink, 0, from, "link %q targets unknown heading reference %q", run.Text, target)
				continue
			}
			doc.Links = append(doc.Links, deck.CrossLink{
				Kind: deck.LinkHeading, From: from, Text: run.Text, Target: target, To: to,
			})

		case run.Href == "" && !run.Code:
			for _, m := range footnoteUsage.FindAllStringSubmatch(run.Text, -1) {
				doc.Diagnostics.Warn(deck.WarnUnresolvedLink, 0, from, "footnote %q is not defined", m[1])
			}
		}
	}
}

// collectAbbreviations merges inline <abbr> usages into the glossary.
// Definitions win over usages; the first meaning of a term is kept.
func collectAbbreviations(doc *deck.Document, inline *InlineParser) {
	known := make(map[string]bool)
	var glossary []deck.GlossaryEntry
	add := func(term, meaning string) {
		if term == "" || known[term] {
			return
		}
		known[term] = true
		glossary = append(glossary, deck.GlossaryEntry{Term: term, Meaning: meaning})
	}

	for _, g := range doc.Glossary {
		add(g.Term, g.Meaning)
	}
	for _, s := range doc.Slides {
		for _, text := range slideTexts(s) {
			if !strings.Contains(text, "<abbr") {
				continue
			}
			for _, run := range inline.Parse(text) {
				if run.Abbr != "" {
					add(strings.TrimSpace(run.Text), run.Abbr)
				}
			}
		}
	}
	doc.Glossary = glossary
}

// Paginate splits n items into pages of at most size items and returns the
// bounds of each page.
func Paginate(n, size int) [][2]int {
	if n <= 0 {
		return nil
	}
	size = max(1, size)
	var pages [][2]int
	for start := 0; start < n; start += size {
		pages = append(pages, [2]int{start, min(start+size, n)})
	}
	return pages
}

// pageTitle numbers a generated title when there is more than one page.
func pageTitle(stem string, page, pages int) string {
	if pages > 1 {
		return fmt.Sprintf("%s - %d", stem, page+1)
	}
	return stem
}

// generatedSlide opens a slide after the compiled ones.
func generatedSlide(doc *deck.Document, title string, origin deck.Generated) *deck.Slide {
	s := &deck.Slide{
		Number:  len(doc.Slides) + 1,
		Title:   title,
		Type:    deck.BlockContent,
		Origin:  origin,
		Style:   doc.Style.Clone(),
		Context: lastContext(doc),
	}
	doc.Slides = append(doc.Slides, s)
	return s
}

func lastContext(doc *deck.Document) deck.Context {
	if n := len(doc.Slides); n > 0 {
		return doc.Slides[n-1].Context
	}
	return deck.Context{}
}

// appendFootnoteSlides adds the footnote pages and returns, for each
// footnote, the number of the slide that lists it.
func appendFootnoteSlides(doc *deck.Document) []int {
	style := doc.Style
	pages := Paginate(len(doc.Footnotes), style.FootnotesPerPage)
	where := make([]int, len(doc.Footnotes))

	for p, bounds := range pages {
		s := generatedSlide(doc, pageTitle(style.FootnotesTitle, p, len(pages)), deck.GeneratedFootnotes)
		s.Plain = true
		s.Sequence = []deck.BlockKind{deck.KindList}
		list := make([]deck.Bullet, 0, bounds[1]-bounds[0])
		for i := bounds[0]; i < bounds[1]; i++ {
			list = append(list, deck.Bullet{
				Level: 1,
				Text:  strconv.Itoa(i+1) + ". " + doc.Footnotes[i].Text,
				Kind:  deck.Bulleted,
			})
			where[i] = s.Number
		}
		s.Lists = [][]deck.Bullet{list}
	}
	return where
}

// appendGlossarySlides adds the sorted glossary table pages.
func appendGlossarySlides(doc *deck.Document) {
	style := doc.Style
	terms := slices.Clone(doc.Glossary)
	slices.SortFunc(terms, func(a, b deck.GlossaryEntry) int { return strings.Compare(a.Term, b.Term) })

	pages := Paginate(len(terms), style.GlossaryTermsPerPage)
	for p, bounds := range pages {
		rows := [][]string{
			{style.GlossaryTerm, style.GlossaryMeaning},
			{":-", ":" + strings.Repeat("-", max(1, style.GlossaryMeaningWidth))},
		}
		for _, t := range terms[bounds[0]:bounds[1]] {
			rows = append(rows, []string{t.Term, t.Meaning})
		}
		tableSlide(doc, pageTitle(style.GlossaryTitle, p, len(pages)), deck.GeneratedGlossary, rows)
	}
}

// appendTaskSlides adds the task table pages selected by taskSlides.
func appendTaskSlides(doc *deck.Document) {
	if len(doc.Tasks) == 0 {
		return
	}
	var complete, incomplete []deck.Task
	for _, t := range doc.Tasks {
		if t.Complete() {
			complete = append(complete, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}

	switch doc.Style.TaskSlides {
	case options.TaskSlidesAll:
		taskPages(doc, doc.Tasks, "Tasks")
	case options.TaskSlidesSeparate:
		taskPages(doc, complete, "Completed Tasks")
		taskPages(doc, incomplete, "Incomplete Tasks")
	case options.TaskSlidesRemaining:
		taskPages(doc, incomplete, "Incomplete Tasks")
	case options.TaskSlidesDone:
		taskPages(doc, complete, "Completed Tasks")
	}
}

func taskPages(doc *deck.Document, tasks []deck.Task, stem string) {
	pages := Paginate(len(tasks), doc.Style.TasksPerPage)
	for p, bounds := range pages {
		rows := [][]string{
			{"Slide", "Due", "Task", "Tags", "Done"},
			{"-:", ":--:", ":----", ":----", ":--:"},
		}
		previous := 0
		for _, t := range tasks[bounds[0]:bounds[1]] {
			number := ""
			if t.Slide != previous {
				number = strconv.Itoa(t.Slide)
			}
			previous = t.Slide
			rows = append(rows, []string{number, t.Due, t.Text, sortTags(t.Tags), t.Done})
		}
		s := tableSlide(doc, pageTitle(stem, p, len(pages)), deck.GeneratedTasks, rows)
		for _, t := range tasks[bounds[0]:bounds[1]] {
			doc.Links = append(doc.Links, deck.CrossLink{
				Kind: deck.LinkTask, From: s.Number, Text: t.Text, Target: strconv.Itoa(t.Slide), To: t.Slide,
			})
		}
	}
}

// sortTags normalizes a tag list to sorted, comma-separated form.
func sortTags(tags string) string {
	if tags == "" {
		return ""
	}
	var list []string
	for _, t := range tagSeparator.Split(tags, -1) {
		if t != "" {
			list = append(list, t)
		}
	}
	slices.Sort(list)
	return strings.Join(list, ",")
}

// tableSlide adds a generated slide holding one table.
func tableSlide(doc *deck.Document, title string, origin deck.Generated, rows [][]string) *deck.Slide {
	s := generatedSlide(doc, title, origin)
	s.Type = deck.BlockTable
	g := &deck.TableGrid{Rows: rows}
	finishTable(g)
	s.Tables = []*deck.TableGrid{g}
	s.Sequence = []deck.BlockKind{deck.KindTable}
	return s
}
