// Package layout turns compiled slides into positioned geometry.
//
// Layout is a pure function of a slide, its resolved style and the slide
// master: it never modifies the slide and never touches the filesystem.
// Natural media sizes come from a NaturalSizer, normally the result of
// media.ProbeAll.
//
// All lengths are integer EMU, so the same slide always produces the same
// geometry.
package layout
