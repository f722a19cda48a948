package assets

import (
	"fmt"

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/yamlutil"
)

// DefaultMasterName is the name of the built-in 16:9 master.
const DefaultMasterName = "default"

// Box is a placeholder position in inches.
type Box struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
}

// Rect converts the box to EMU.
func (b Box) Rect() deck.Rectangle {
	return deck.Rectangle{
		Top:    deck.Inches(b.Top),
		Left:   deck.Inches(b.Left),
		Height: deck.Inches(b.Height),
		Width:  deck.Inches(b.Width),
	}
}

// Placeholders are the title and subtitle boxes of one slide layout.
type Placeholders struct {
	Title    Box `yaml:"title"`
	Subtitle Box `yaml:"subtitle"`
}

// Master describes the slide size and the fixed placeholders of title and
// section slides. Content slides compute their own title geometry.
type Master struct {
	Name    string       `yaml:"name"`
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Title   Placeholders `yaml:"title"`
	Section Placeholders `yaml:"section"`
}

// SlideWidth returns the slide width in EMU.
func (m *Master) SlideWidth() deck.EMU { return deck.Inches(m.Width) }

// SlideHeight returns the slide height in EMU.
func (m *Master) SlideHeight() deck.EMU { return deck.Inches(m.Height) }

// Validate checks the slide size and that every placeholder lies on the
// slide. Returns nil if m is nil.
func (m *Master) Validate() error {
	if m == nil {
		return nil
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: slide size %.3gx%.3g", ErrInvalidMaster, m.Width, m.Height)
	}

	slide := Box{Width: m.Width, Height: m.Height}.Rect()
	boxes := map[string]Box{
		"title.title":      m.Title.Title,
		"title.subtitle":   m.Title.Subtitle,
		"section.title":    m.Section.Title,
		"section.subtitle": m.Section.Subtitle,
	}
	for name, b := range boxes {
		r := b.Rect()
		if r.Empty() {
			return fmt.Errorf("%w: %s has no area", ErrInvalidMaster, name)
		}
		if !slide.Contains(r) {
			return fmt.Errorf("%w: %s lies outside the slide", ErrInvalidMaster, name)
		}
	}
	return nil
}

// ParseMaster decodes and validates a master. Unknown fields are rejected.
// An empty name in the file is replaced by name.
func ParseMaster(name string, data []byte) (*Master, error) {
	var m Master
	if err := yamlutil.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMaster, name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
