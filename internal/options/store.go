package options

import (
	"fmt"
	"reflect"
	"strings"
)

// Keywords accepted as dynamic directive values.
const (
	KeywordDefault = "default"
	KeywordPres    = "pres"
	KeywordPop     = "pop"
	KeywordPrev    = "prev"
)

// Store resolves options through three tiers: built-in defaults, the
// presentation tier set by metadata, and the current tier changed by
// dynamic directives.
//
// A dynamic set stays in effect until it is popped or overridden; it does not
// revert at the next slide. Each key keeps its own history, so "pop" restores
// whatever was in effect before that key's most recent dynamic change.
type Store struct {
	def     Style
	pres    Style
	cur     Style
	history map[int][]reflect.Value
}

// NewStore creates a store whose three tiers all start at base.
func NewStore(base Style) *Store {
	return &Store{
		def:     base.Clone(),
		pres:    base.Clone(),
		cur:     base.Clone(),
		history: make(map[int][]reflect.Value),
	}
}

// SetPresentation sets a presentation-level option. The current value follows.
func (s *Store) SetPresentation(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	v, err := f.parse(value)
	if err != nil {
		return err
	}

	pres := s.pres.Clone()
	f.set(&pres, v)
	if err := pres.Validate(); err != nil {
		return err
	}

	s.pres = pres
	f.set(&s.cur, f.get(&s.pres))
	delete(s.history, f.index)
	return nil
}

// SetDynamic applies an inline directive to the current tier. The value may
// be one of the keywords "default", "pres", "pop" or "prev".
func (s *Store) SetDynamic(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}
	if !f.dynamic {
		return fmt.Errorf("%w: %q", ErrNotDynamic, key)
	}

	var next reflect.Value
	switch strings.ToLower(strings.TrimSpace(value)) {
	case KeywordPop, KeywordPrev:
		s.pop(f)
		return nil
	case KeywordDefault:
		next = f.get(&s.def)
	case KeywordPres:
		next = f.get(&s.pres)
	default:
		next, err = f.parse(value)
		if err != nil {
			return err
		}
	}

	cur := s.cur.Clone()
	f.set(&cur, next)
	if err := cur.Validate(); err != nil {
		return err
	}

	s.history[f.index] = append(s.history[f.index], f.get(&s.cur))
	s.cur = cur
	return nil
}

// pop restores the value in effect before the latest dynamic change, or the
// presentation value when there is no history left.
func (s *Store) pop(f *field) {
	stack := s.history[f.index]
	if len(stack) == 0 {
		f.set(&s.cur, f.get(&s.pres))
		return
	}
	f.set(&s.cur, stack[len(stack)-1])
	s.history[f.index] = stack[:len(stack)-1]
}

// Current returns a copy of the resolved options.
func (s *Store) Current() Style {
	return s.cur.Clone()
}

// Presentation returns a copy of the presentation tier.
func (s *Store) Presentation() Style {
	return s.pres.Clone()
}

// Default returns a copy of the default tier.
func (s *Store) Default() Style {
	return s.def.Clone()
}

// IsOption reports whether key names a known option.
func IsOption(key string) bool {
	_, err := lookup(key)
	return err == nil
}
