package deck

import "github.com/cblegare/md2pptx/internal/options"

// BlockType classifies a whole slide.
type BlockType string

// Slide block types.
const (
	BlockTitle   BlockType = "title"
	BlockSection BlockType = "section"
	BlockContent BlockType = "content"
	BlockCode    BlockType = "code"
	BlockTable   BlockType = "table"
)

// BlockKind tags one content block in a slide's sequence.
type BlockKind string

// Content block kinds.
const (
	KindList  BlockKind = "list"
	KindTable BlockKind = "table"
	KindCode  BlockKind = "code"
)

// BulletKind distinguishes "* item" from "1. item".
type BulletKind string

// Bullet kinds.
const (
	Bulleted BulletKind = "bulleted"
	Numbered BulletKind = "numbered"
)

// BlankTitle is the title text of a slide that shows no title.
const BlankTitle = "&nbsp;"

// Bullet is one list entry. Level 0 is the outermost.
type Bullet struct {
	Level int        `yaml:"level"`
	Text  string     `yaml:"text"`
	Kind  BulletKind `yaml:"kind"`
}

// Generated marks slides synthesized after compilation.
type Generated string

// Generated slide kinds.
const (
	GeneratedNone      Generated = ""
	GeneratedFootnotes Generated = "footnotes"
	GeneratedGlossary  Generated = "glossary"
	GeneratedTasks     Generated = "tasks"
)

// TOCRole says how a slide takes part in the table of contents grid.
type TOCRole string

// TOC roles.
const (
	TOCNone     TOCRole = ""
	TOCContents TOCRole = "contents" // the slide titled tocTitle
	TOCSection  TOCRole = "section"  // a section slide repeating the grid
)

// Context records where a slide sits in the deck, for footer variables.
type Context struct {
	Section      string `yaml:"section,omitempty"`
	PresTitle    string `yaml:"presTitle,omitempty"`
	PresSubtitle string `yaml:"presSubtitle,omitempty"`
}

// Slide is the compiled content of one output slide, before layout.
//
// Sequence lists the slide's content blocks in the order they appeared.
// The i-th KindList entry corresponds to Lists[i], and likewise for tables
// and code blocks. Cards render inside the list block that opened them.
type Slide struct {
	Number   int           `yaml:"number"`
	Line     int           `yaml:"line"`
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle,omitempty"`
	Href     string        `yaml:"href,omitempty"`
	Type     BlockType     `yaml:"type"`
	Sequence []BlockKind   `yaml:"sequence,omitempty"`
	Lists    [][]Bullet    `yaml:"lists,omitempty"`
	Tables   []*TableGrid  `yaml:"tables,omitempty"`
	Cards    []*Card       `yaml:"cards,omitempty"`
	Code     []*CodeBlock  `yaml:"code,omitempty"`
	Notes    string        `yaml:"notes,omitempty"`
	TOC      TOCRole       `yaml:"toc,omitempty"`
	Plain    bool          `yaml:"plain,omitempty"` // bullets render without markers
	Origin   Generated     `yaml:"generated,omitempty"`
	Context  Context       `yaml:"context,omitempty"`
	Style    options.Style `yaml:"-"`
}

// HasTitle reports whether the slide shows a title.
func (s *Slide) HasTitle() bool {
	return s.Title != "" && s.Title != BlankTitle
}

// Bullets returns every slide-level bullet across all list blocks.
func (s *Slide) Bullets() []Bullet {
	var out []Bullet
	for _, l := range s.Lists {
		out = append(out, l...)
	}
	return out
}

// BlockIndex returns, for position i in Sequence, the index of that block
// within its per-kind slice.
func (s *Slide) BlockIndex(i int) int {
	kind := s.Sequence[i]
	n := 0
	for _, k := range s.Sequence[:i] {
		if k == kind {
			n++
		}
	}
	return n
}

// CountKind returns how many blocks of kind the slide holds.
func (s *Slide) CountKind(kind BlockKind) int {
	switch kind {
	case KindList:
		return len(s.Lists)
	case KindTable:
		return len(s.Tables)
	case KindCode:
		return len(s.Code)
	}
	return 0
}

// Card is a titled panel of bullets and an optional graphic, placed inside
// a slide's list block. List is the index into Slide.Lists of that block.
type Card struct {
	List    int       `yaml:"list"`
	Title   string    `yaml:"title"`
	Href    string    `yaml:"href,omitempty"`
	Bullets []Bullet  `yaml:"bullets,omitempty"`
	Graphic *MediaRef `yaml:"graphic,omitempty"`
}

// CodeBlock holds the literal lines of a code block. The first line is the
// opener that selected it (a fence with its tag, <pre>, <code>, or four
// spaces for an indented block), kept for later classification.
type CodeBlock struct {
	Lines []string `yaml:"lines"`
}

// Opener returns the block's first line.
func (c *CodeBlock) Opener() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0]
}

// Body returns the literal code lines without the opener.
func (c *CodeBlock) Body() []string {
	if len(c.Lines) < 2 {
		return nil
	}
	return c.Lines[1:]
}
