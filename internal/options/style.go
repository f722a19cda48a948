package options

import (
	"fmt"
	"slices"
)

// MaxBlocks caps the number of content blocks a slide splits its body into.
const MaxBlocks = 10

// Content split directions.
const (
	SplitVertical   = "vertical"
	SplitHorizontal = "horizontal"
)

// Card layouts and placements.
const (
	CardLayoutHorizontal = "horizontal"
	CardLayoutVertical   = "vertical"

	CardTitleAbove  = "above"
	CardTitleInside = "inside"

	CardGraphicBefore = "before"
	CardGraphicAfter  = "after"

	CardShapeLine = "line"
)

// TOC styles. An empty style means no TOC grid is drawn.
const (
	TOCStylePlain   = "plain"
	TOCStyleChevron = "chevron"
	TOCStyleCircle  = "circle"
)

// Task slide selections.
const (
	TaskSlidesAll       = "all"
	TaskSlidesSeparate  = "separate"
	TaskSlidesRemaining = "remaining"
	TaskSlidesDone      = "done"
	TaskSlidesNone      = "none"
)

// Style is the resolved set of layout options for a slide.
//
// Sizes suffixed "Size" are in points. Lengths (margins, gaps, heights)
// are in inches. Field names in the yaml tags are the option names accepted
// by metadata lines and dynamic directives, matched case-insensitively.
type Style struct {
	// Titles
	PageTitleSize       float64 `yaml:"pageTitleSize"`
	PageSubtitleSize    float64 `yaml:"pageSubtitleSize"` // 0 = same as pageTitleSize
	PageTitleAlign      string  `yaml:"pageTitleAlign" enum:"left|center|right"`
	SectionTitleSize    float64 `yaml:"sectionTitleSize"`
	SectionSubtitleSize float64 `yaml:"sectionSubtitleSize"`
	PresTitleSize       float64 `yaml:"presTitleSize"`
	PresSubtitleSize    float64 `yaml:"presSubtitleSize"`

	// Text
	BaseTextSize      float64 `yaml:"baseTextSize"`
	BaseTextDecrement float64 `yaml:"baseTextDecrement"`
	TopHeadingLevel   int     `yaml:"topHeadingLevel"`
	IndentSpaces      int     `yaml:"indentSpaces" dynamic:"true"`

	// Body geometry
	MarginBase            float64 `yaml:"marginBase" dynamic:"true"`
	NumbersHeight         float64 `yaml:"numbersHeight" dynamic:"true"`
	ContentSplit          []int   `yaml:"contentSplit" dynamic:"true"`
	ContentSplitDirection string  `yaml:"contentSplitDirection" dynamic:"true" enum:"vertical|horizontal" alias:"v=vertical,h=horizontal"`

	// Code
	CodeColumns     int     `yaml:"codeColumns" dynamic:"true"`
	FixedPitchRatio float64 `yaml:"fpRatio" dynamic:"true"`
	MonoFont        string  `yaml:"monoFont"`
	CodeForeground  string  `yaml:"codeForeground" dynamic:"true"`
	CodeBackground  string  `yaml:"codeBackground" dynamic:"true"`

	// Tables
	TableMargin      float64 `yaml:"tableMargin" dynamic:"true"`
	SpanCells        bool    `yaml:"spanCells" dynamic:"true"`
	TableHeadingSize float64 `yaml:"tableHeadingSize" dynamic:"true"`
	CompactTables    float64 `yaml:"compactTables" dynamic:"true"`

	// Cards
	CardPercent         int     `yaml:"cardPercent" dynamic:"true"`
	CardLayout          string  `yaml:"cardLayout" dynamic:"true" enum:"horizontal|vertical"`
	CardTitleAlign      string  `yaml:"cardTitleAlign" dynamic:"true" enum:"l|c|r" alias:"left=l,center=c,centre=c,right=r"`
	CardTitlePosition   string  `yaml:"cardTitlePosition" dynamic:"true" enum:"above|inside"`
	CardShape           string  `yaml:"cardShape" dynamic:"true" enum:"rounded|squared|line"`
	HorizontalCardGap   float64 `yaml:"horizontalCardGap"`
	VerticalCardGap     float64 `yaml:"verticalCardGap"`
	CardTitleSize       float64 `yaml:"cardTitleSize"`
	CardGraphicSize     float64 `yaml:"cardGraphicSize" dynamic:"true"`
	CardGraphicPosition string  `yaml:"cardGraphicPosition" dynamic:"true" enum:"before|after"`
	CardGraphicPadding  float64 `yaml:"cardGraphicPadding"`

	// Table of contents
	TOCTitle      string  `yaml:"tocTitle"`
	TOCStyle      string  `yaml:"tocStyle" enum:"|plain|chevron|circle"`
	TOCItemHeight float64 `yaml:"tocItemHeight"`
	TOCRowGap     float64 `yaml:"tocRowGap"`
	TOCFontSize   float64 `yaml:"tocFontSize"`

	// Generated slides
	GlossaryTitle        string `yaml:"glossaryTitle"`
	GlossaryTerm         string `yaml:"glossaryTerm"`
	GlossaryMeaning      string `yaml:"glossaryMeaning"`
	GlossaryMeaningWidth int    `yaml:"glossaryMeaningWidth"`
	GlossaryTermsPerPage int    `yaml:"glossaryTermsPerPage"`
	FootnotesTitle       string `yaml:"footnotesTitle"`
	FootnotesPerPage     int    `yaml:"footnotesPerPage"`
	TaskSlides           string `yaml:"taskSlides" enum:"all|separate|remaining|done|none"`
	TasksPerPage         int    `yaml:"tasksPerPage"`

	// Footers
	LeftFooterText   string  `yaml:"leftFooterText"`
	MiddleFooterText string  `yaml:"middleFooterText"`
	RightFooterText  string  `yaml:"rightFooterText"`
	FooterFontSize   float64 `yaml:"footerFontSize"` // 0 = 8pt
	SectionFooters   bool    `yaml:"sectionFooters"`

	// Slide show
	Transition string `yaml:"transition" dynamic:"true" enum:"none|ripple|reveal|honeycomb|shred|wipe|push|vortex|split|fracture"`
	Hidden     bool   `yaml:"hidden" dynamic:"true"`
}

// DefaultStyle returns the built-in option values.
func DefaultStyle() Style {
	return Style{
		PageTitleSize:       30,
		PageTitleAlign:      "left",
		SectionTitleSize:    40,
		SectionSubtitleSize: 28,
		PresTitleSize:       40,
		PresSubtitleSize:    28,

		BaseTextSize:      18,
		BaseTextDecrement: 2,
		TopHeadingLevel:   1,
		IndentSpaces:      2,

		MarginBase:            0.2,
		NumbersHeight:         0.4,
		ContentSplit:          PadSplit(nil),
		ContentSplitDirection: SplitVertical,

		CodeColumns:     80,
		FixedPitchRatio: 1.2,
		MonoFont:        "Courier",
		CodeForeground:  "000000",
		CodeBackground:  "DFFFDF",

		TableMargin: 0.2,
		SpanCells:   true,

		CardPercent:         80,
		CardLayout:          CardLayoutHorizontal,
		CardTitleAlign:      "c",
		CardTitlePosition:   CardTitleAbove,
		CardShape:           "rounded",
		HorizontalCardGap:   0.25,
		VerticalCardGap:     0.15,
		CardGraphicPosition: CardGraphicBefore,
		CardGraphicPadding:  0.1,

		TOCTitle:  "Topics",
		TOCRowGap: 0.75,

		GlossaryTitle:        "Title",
		GlossaryTerm:         "Term",
		GlossaryMeaning:      "Meaning",
		GlossaryMeaningWidth: 5,
		GlossaryTermsPerPage: 20,
		FootnotesTitle:       "Footnotes",
		FootnotesPerPage:     20,
		TaskSlides:           TaskSlidesAll,
		TasksPerPage:         20,

		Transition: "none",
	}
}

// Clone returns a deep copy of s.
func (s Style) Clone() Style {
	s.ContentSplit = slices.Clone(s.ContentSplit)
	return s
}

// PadSplit extends a content split vector with weight 1 up to MaxBlocks
// entries and truncates anything beyond.
func PadSplit(weights []int) []int {
	out := make([]int, MaxBlocks)
	for i := range out {
		out[i] = 1
	}
	copy(out, weights)
	return out
}

// TitleLevel is the heading depth of presentation title slides.
func (s *Style) TitleLevel() int { return s.TopHeadingLevel }

// SectionLevel is the heading depth of section slides.
func (s *Style) SectionLevel() int { return s.TopHeadingLevel + 1 }

// ContentLevel is the heading depth of content slides.
func (s *Style) ContentLevel() int { return s.TopHeadingLevel + 2 }

// CardLevel is the heading depth that opens a card on the current slide.
func (s *Style) CardLevel() int { return s.TopHeadingLevel + 3 }

// SubtitleSize returns the page subtitle size, falling back to the title size.
func (s *Style) SubtitleSize() float64 {
	if s.PageSubtitleSize == 0 {
		return s.PageTitleSize
	}
	return s.PageSubtitleSize
}

// Validate checks ranges that enumerations alone cannot express.
// Returns nil if s is nil.
func (s *Style) Validate() error {
	if s == nil {
		return nil
	}

	switch {
	case s.TopHeadingLevel < 1 || s.TopHeadingLevel > 3:
		return fmt.Errorf("%w: topHeadingLevel %d (must be 1-3)", ErrInvalidValue, s.TopHeadingLevel)
	case s.IndentSpaces < 1:
		return fmt.Errorf("%w: indentSpaces %d (must be >= 1)", ErrInvalidValue, s.IndentSpaces)
	case s.CardPercent < 0 || s.CardPercent > 100:
		return fmt.Errorf("%w: cardPercent %d (must be 0-100)", ErrInvalidValue, s.CardPercent)
	case s.CodeColumns < 1:
		return fmt.Errorf("%w: codeColumns %d (must be >= 1)", ErrInvalidValue, s.CodeColumns)
	case s.FixedPitchRatio <= 0:
		return fmt.Errorf("%w: fpRatio %.2f (must be > 0)", ErrInvalidValue, s.FixedPitchRatio)
	case s.MarginBase < 0 || s.TableMargin < 0 || s.NumbersHeight < 0:
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidValue)
	case s.FootnotesPerPage < 1 || s.GlossaryTermsPerPage < 1 || s.TasksPerPage < 1:
		return fmt.Errorf("%w: items per page must be >= 1", ErrInvalidValue)
	}

	if len(s.ContentSplit) != MaxBlocks {
		return fmt.Errorf("%w: contentSplit has %d weights (want %d)", ErrInvalidValue, len(s.ContentSplit), MaxBlocks)
	}
	for _, w := range s.ContentSplit {
		if w < 0 {
			return fmt.Errorf("%w: contentSplit weight %d is negative", ErrInvalidValue, w)
		}
	}

	return nil
}
