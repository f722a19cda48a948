// Package pipeline turns slide Markdown into a compiled deck.
//
// The stages run in order and each one has its own type:
//   - MarkdownNormalizer strips comments and raw HTML, extracts the metadata
//     block, joins soft-wrapped lines and pulls out definitions
//   - DocumentCompiler runs the heading/list/table/card/code state machine
//     and builds a deck.Document with one style snapshot per slide
//   - LinkResolver appends footnote, glossary and task slides and resolves
//     internal links against the heading registry
//
// Geometry is computed separately by the layout package, one slide at a
// time, from the compiled document.
package pipeline
