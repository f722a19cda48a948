package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cblegare/md2pptx/internal/deck"
)

func resolveMarkdown(t *testing.T, md string) *deck.Document {
	t.Helper()

	doc := compileMarkdown(t, md)
	if err := (&LinkResolver{}).Resolve(context.Background(), doc); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return doc
}

func slideTitles(doc *deck.Document) []string {
	var out []string
	for _, s := range doc.Slides {
		out = append(out, s.Title)
	}
	return out
}

func TestResolve_FootnotesAndLinks(t *testing.T) {
	t.Parallel()

	doc := resolveMarkdown(t, lines(
		"footnotesPerPage: 2",
		"",
		"### A [a]",
		"* see [B](#b) and claim[^1]",
		"* bad [x](#nowhere) and [^zz]",
		"### B [b]",
		"[^1]: first",
		"[^2]: second",
		"[^3]: third",
	))

	want := []string{"A", "B", "Footnotes - 1", "Footnotes - 2"}
	if diff := cmp.Diff(want, slideTitles(doc)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	page := doc.Slides[2]
	if !page.Plain || page.Origin != deck.GeneratedFootnotes {
		t.Errorf("footnote page Plain = %v Origin = %q", page.Plain, page.Origin)
	}
	wantBullets := []deck.Bullet{
		{Level: 1, Text: "1. first", Kind: deck.Bulleted},
		{Level: 1, Text: "2. second", Kind: deck.Bulleted},
	}
	if diff := cmp.Diff(wantBullets, page.Bullets()); diff != "" {
		t.Errorf("footnote bullets mismatch (-want +got):\n%s", diff)
	}

	wantLinks := []deck.CrossLink{
		{Kind: deck.LinkHeading, From: 1, Text: "B", Target: "b", To: 2},
		{Kind: deck.LinkFootnote, From: 1, Text: "[^1]", Target: "1", To: 3},
	}
	if diff := cmp.Diff(wantLinks, doc.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}

	if got := doc.Diagnostics.Of(deck.WarnUnresolvedLink); len(got) != 2 {
		t.Errorf("unresolved warnings = %v, want 2", got)
	}
}

func TestResolve_Glossary(t *testing.T) {
	t.Parallel()

	doc := resolveMarkdown(t, lines(
		"### A",
		"*[HTML]: Hyper Text",
		`* <abbr title="Cascading Style Sheets">CSS</abbr> and <abbr title="other">HTML</abbr>`,
	))

	if len(doc.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(doc.Slides))
	}
	s := doc.Slides[1]
	if s.Origin != deck.GeneratedGlossary || s.Type != deck.BlockTable {
		t.Errorf("glossary slide Origin = %q Type = %q", s.Origin, s.Type)
	}

	g := s.Tables[0]
	wantRows := [][]string{
		{"Term", "Meaning"},
		{"CSS", "Cascading Style Sheets"},
		{"HTML", "Hyper Text"},
	}
	if diff := cmp.Diff(wantRows, g.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 5}, g.Widths); diff != "" {
		t.Errorf("widths mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_TaskSlides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mode       string
		wantTitles []string
	}{
		{"all", "all", []string{"A", "B", "Tasks"}},
		{"separate", "separate", []string{"A", "B", "Completed Tasks", "Incomplete Tasks"}},
		{"remaining", "remaining", []string{"A", "B", "Incomplete Tasks"}},
		{"done", "done", []string{"A", "B", "Completed Tasks"}},
		{"none", "none", []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := resolveMarkdown(t, lines(
				"taskSlides: "+tt.mode,
				"",
				"### A",
				"- one @done(2024-01-01)",
				"- two",
				"### B",
				"- three @tags(z a)",
			))
			if diff := cmp.Diff(tt.wantTitles, slideTitles(doc)); diff != "" {
				t.Errorf("titles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_TaskRows(t *testing.T) {
	t.Parallel()

	doc := resolveMarkdown(t, lines(
		"### A",
		"- one @done(2024-01-01)",
		"- two",
		"### B",
		"- three @tags(z a)",
	))

	g := doc.Slides[2].Tables[0]
	wantRows := [][]string{
		{"Slide", "Due", "Task", "Tags", "Done"},
		{"1", "", "one", "", "2024-01-01"},
		{"", "", "two", "", ""},
		{"2", "", "three", "a,z", ""},
	}
	if diff := cmp.Diff(wantRows, g.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	wantAlign := []deck.Alignment{deck.AlignRight, deck.AlignCenter, deck.AlignLeft, deck.AlignLeft, deck.AlignCenter}
	if diff := cmp.Diff(wantAlign, g.Alignments); diff != "" {
		t.Errorf("alignments mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_TOCUnknownTarget(t *testing.T) {
	t.Parallel()

	doc := resolveMarkdown(t, lines(
		"tocStyle: circle",
		"",
		"### Topics",
		"* [Missing](#missing)",
	))

	if got := doc.Diagnostics.Of(deck.WarnUnresolvedLink); len(got) < 1 {
		t.Errorf("unresolved warnings = %v, want at least one", got)
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 25; n++ {
		for size := 1; size <= 7; size++ {
			pages := Paginate(n, size)
			if want := (n + size - 1) / size; len(pages) != want {
				t.Fatalf("Paginate(%d, %d) = %d pages, want %d", n, size, len(pages), want)
			}
			total := 0
			for i, p := range pages {
				count := p[1] - p[0]
				total += count
				if i < len(pages)-1 && count != size {
					t.Errorf("Paginate(%d, %d) page %d holds %d, want %d", n, size, i, count, size)
				}
			}
			if total != n {
				t.Errorf("Paginate(%d, %d) covers %d items", n, size, total)
			}
		}
	}
}
