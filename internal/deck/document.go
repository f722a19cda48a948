package deck

import "github.com/cblegare/md2pptx/internal/options"

// Document is the compiled deck. It is built once and not modified after
// link resolution.
type Document struct {
	Slides      []*Slide        `yaml:"slides"`
	Metadata    []Metadata      `yaml:"metadata,omitempty"`
	Footnotes   []Footnote      `yaml:"footnotes,omitempty"`
	References  []Reference     `yaml:"references,omitempty"`
	Glossary    []GlossaryEntry `yaml:"glossary,omitempty"`
	Tasks       []Task          `yaml:"tasks,omitempty"`
	TOC         []TOCEntry      `yaml:"toc,omitempty"`
	Hrefs       map[string]int  `yaml:"hrefs,omitempty"` // heading reference -> slide number
	Links       []CrossLink     `yaml:"links,omitempty"`
	Diagnostics Diagnostics     `yaml:"diagnostics,omitempty"`

	// Style holds the options in effect at the end of the document. Generated
	// slides are laid out with it.
	Style options.Style `yaml:"-"`
}

// LinkKind distinguishes the internal link forms.
type LinkKind string

// Link kinds.
const (
	LinkHeading  LinkKind = "heading"
	LinkFootnote LinkKind = "footnote"
	LinkTask     LinkKind = "task"
)

// CrossLink is an internal link resolved to the slide it targets.
type CrossLink struct {
	Kind   LinkKind `yaml:"kind"`
	From   int      `yaml:"from"`
	Text   string   `yaml:"text"`
	Target string   `yaml:"target"`
	To     int      `yaml:"to"`
}

// Metadata is one "key: value" line of the leading metadata block.
type Metadata struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Line  int    `yaml:"line"`
}

// Footnote is a "[^ref]: text" definition.
type Footnote struct {
	Ref  string `yaml:"ref"`
	Text string `yaml:"text"`
}

// Reference is a "[name]: url" indirect link target.
type Reference struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// GlossaryEntry is an abbreviation and its meaning.
type GlossaryEntry struct {
	Term    string `yaml:"term"`
	Meaning string `yaml:"meaning"`
}

// TOCEntry is one item of the table of contents grid.
type TOCEntry struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href,omitempty"`
}

// Task is a taskpaper-style item declared on a slide.
type Task struct {
	Slide int    `yaml:"slide"`
	Text  string `yaml:"text"`
	Due   string `yaml:"due,omitempty"`
	Tags  string `yaml:"tags,omitempty"`
	Done  string `yaml:"done,omitempty"`
}

// Complete reports whether the task carries a done marker.
func (t Task) Complete() bool { return t.Done != "" }

// ReferenceURL looks up an indirect reference by name.
func (d *Document) ReferenceURL(name string) (string, bool) {
	for _, r := range d.References {
		if r.Name == name {
			return r.URL, true
		}
	}
	return "", false
}

// Slide returns the slide with the given 1-based number, or nil.
func (d *Document) Slide(number int) *Slide {
	if number < 1 || number > len(d.Slides) {
		return nil
	}
	return d.Slides[number-1]
}
