// Package deck holds the compiled slide model shared by the compiler, the
// layout engine and renderers.
//
// Values are plain data. The compiler builds them, the link resolver
// appends generated slides, and after that nothing mutates them: layout
// returns geometry in its own types keyed by block and card index.
package deck
