package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/cblegare/md2pptx/internal/deck"
)

// footnoteUsage matches a footnote reference left as text because it has no
// definition.
var footnoteUsage = regexp.MustCompile(`\[\^([^\]]+)\]`)

// Run is a span of inline text sharing one set of attributes.
type Run struct {
	Text     string `yaml:"text"`
	Bold     bool   `yaml:"bold,omitempty"`
	Italic   bool   `yaml:"italic,omitempty"`
	Code     bool   `yaml:"code,omitempty"`
	Strike   bool   `yaml:"strike,omitempty"`
	Href     string `yaml:"href,omitempty"`
	Footnote string `yaml:"footnote,omitempty"` // referenced footnote
	Abbr     string `yaml:"abbr,omitempty"`     // meaning of an abbreviation
}

// InlineParser splits text into runs. Footnote and reference definitions
// are supplied so that usages resolve the way they do in the full document.
type InlineParser struct {
	md         goldmark.Markdown
	footnotes  []deck.Footnote
	references []deck.Reference
}

// NewInlineParser creates a parser that knows the document's definitions.
func NewInlineParser(footnotes []deck.Footnote, references []deck.Reference) *InlineParser {
	return &InlineParser{
		md:         goldmark.New(goldmark.WithExtensions(extension.Footnote, extension.Strikethrough)),
		footnotes:  footnotes,
		references: references,
	}
}

// Parse returns the runs of one line of inline Markdown.
func (p *InlineParser) Parse(s string) []Run {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString(escapeBlockStart(s))
	b.WriteString("\n\n")
	for _, r := range p.references {
		b.WriteString("[" + r.Name + "]: " + r.URL + "\n")
	}
	for _, f := range p.footnotes {
		b.WriteString("[^" + f.Ref + "]: " + f.Text + "\n")
	}
	src := []byte(b.String())

	doc := p.md.Parser().Parse(text.NewReader(src))
	w := &runWalker{src: src, refs: footnoteRefs(doc)}
	_ = ast.Walk(doc, w.visit)
	return mergeRuns(w.runs)
}

// escapeBlockStart keeps a line from being read as a block construct.
func escapeBlockStart(s string) string {
	t := strings.TrimLeft(s, " ")
	if t == "" {
		return s
	}
	switch t[0] {
	case '#', '>', '-', '+', '*', '=':
		return `\` + t
	}
	if i := strings.IndexAny(t, ".)"); i > 0 && strings.Trim(t[:i], "0123456789") == "" {
		return t[:i] + `\` + t[i:]
	}
	return t
}

// footnoteRefs maps footnote link indices to their reference names.
func footnoteRefs(doc ast.Node) map[int]string {
	refs := make(map[int]string)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			refs[fn.Index] = string(fn.Ref)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return refs
}

type runWalker struct {
	src  []byte
	refs map[int]string
	runs []Run

	bold, italic, code, strike int
	href                       []string
	abbr                       string
}

func (w *runWalker) current() Run {
	r := Run{
		Bold:   w.bold > 0,
		Italic: w.italic > 0,
		Code:   w.code > 0,
		Strike: w.strike > 0,
		Abbr:   w.abbr,
	}
	if len(w.href) > 0 {
		r.Href = w.href[len(w.href)-1]
	}
	return r
}

func (w *runWalker) emit(s string) {
	if s == "" {
		return
	}
	r := w.current()
	r.Text = s
	w.runs = append(w.runs, r)
}

func (w *runWalker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *east.FootnoteList:
		return ast.WalkSkipChildren, nil

	case *east.FootnoteLink:
		if entering {
			w.runs = append(w.runs, Run{Text: "[^" + w.refs[n.Index] + "]", Footnote: w.refs[n.Index]})
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			w.bold += delta
		} else {
			w.italic += delta
		}

	case *ast.CodeSpan:
		if entering {
			w.code++
		} else {
			w.code--
		}

	case *east.Strikethrough:
		if entering {
			w.strike++
		} else {
			w.strike--
		}

	case *ast.Link:
		if entering {
			w.href = append(w.href, string(n.Destination))
		} else {
			w.href = w.href[:len(w.href)-1]
		}

	case *ast.AutoLink:
		if entering {
			w.href = append(w.href, string(n.URL(w.src)))
			w.emit(string(n.Label(w.src)))
			w.href = w.href[:len(w.href)-1]
		}

	case *ast.Text:
		if entering {
			value := n.Segment.Value(w.src)
			if w.code == 0 {
				value = util.UnescapePunctuations(value)
			}
			w.emit(string(value))
			if n.SoftLineBreak() || n.HardLineBreak() {
				w.emit(" ")
			}
		}

	case *ast.String:
		if entering {
			w.emit(string(n.Value))
		}

	case *ast.RawHTML:
		if entering {
			w.rawHTML(string(n.Segments.Value(w.src)))
		}
	}
	return ast.WalkContinue, nil
}

// rawHTML tracks <abbr title="..."> spans; other inline tags are dropped.
func (w *runWalker) rawHTML(tag string) {
	z := html.NewTokenizer(strings.NewReader(tag))
	switch z.Next() {
	case html.StartTagToken:
		tok := z.Token()
		if tok.Data != "abbr" {
			return
		}
		for _, a := range tok.Attr {
			if a.Key == "title" {
				w.abbr = a.Val
			}
		}
	case html.EndTagToken:
		if z.Token().Data == "abbr" {
			w.abbr = ""
		}
	}
}

// mergeRuns joins adjacent runs with identical attributes.
func mergeRuns(runs []Run) []Run {
	var out []Run
	for _, r := range runs {
		if n := len(out); n > 0 && r.Footnote == "" && out[n-1].Footnote == "" && sameAttributes(out[n-1], r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameAttributes(a, b Run) bool {
	a.Text, b.Text = "", ""
	return a == b
}

// PlainText returns the text of the runs without markup.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Footnote != "" {
			continue
		}
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}
