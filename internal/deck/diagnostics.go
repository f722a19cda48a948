package deck

import "fmt"

// WarningKind groups non-fatal problems found while building a deck.
type WarningKind string

// Warning kinds.
const (
	WarnMetadata       WarningKind = "metadata"
	WarnOption         WarningKind = "option"
	WarnMedia          WarningKind = "media"
	WarnDuplicateRef   WarningKind = "duplicate-ref"
	WarnUnresolvedLink WarningKind = "unresolved-link"
	WarnCode           WarningKind = "code"
	WarnLayout         WarningKind = "layout"
)

// Warning is a problem that was reported and skipped.
// Line and Slide are 1-based; zero means unknown.
type Warning struct {
	Kind    WarningKind `yaml:"kind"`
	Line    int         `yaml:"line,omitempty"`
	Slide   int         `yaml:"slide,omitempty"`
	Message string      `yaml:"message"`
}

func (w Warning) String() string {
	switch {
	case w.Slide > 0 && w.Line > 0:
		return fmt.Sprintf("%s: slide %d, line %d: %s", w.Kind, w.Slide, w.Line, w.Message)
	case w.Slide > 0:
		return fmt.Sprintf("%s: slide %d: %s", w.Kind, w.Slide, w.Message)
	case w.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", w.Kind, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Diagnostics collects warnings in the order they were found.
type Diagnostics struct {
	Warnings []Warning `yaml:"warnings,omitempty"`
}

// Warn records a warning.
func (d *Diagnostics) Warn(kind WarningKind, line, slide int, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{
		Kind:    kind,
		Line:    line,
		Slide:   slide,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge appends other's warnings after d's.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Of returns the warnings of one kind.
func (d Diagnostics) Of(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range d.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of warnings.
func (d Diagnostics) Len() int { return len(d.Warnings) }
