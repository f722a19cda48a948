// Package codeblock classifies code blocks by their opening line and splits
// their contents into highlighted token runs.
package codeblock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrTokenize indicates the lexer failed on a block.
var ErrTokenize = errors.New("failed to tokenize code block")

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "github"

// Kind is the subtype of a code block.
type Kind string

// Code block kinds.
const (
	KindFenced    Kind = "fenced"
	KindPre       Kind = "pre"
	KindCode      Kind = "code"
	KindIndented  Kind = "indented"
	KindDot       Kind = "dot"
	KindFunnel    Kind = "funnel"
	KindRunPython Kind = "run-python"
)

// Info describes a code block's opener.
type Info struct {
	Kind     Kind   `yaml:"kind"`
	Language string `yaml:"language,omitempty"`
	Arg      string `yaml:"arg,omitempty"` // e.g. the file of "run-python file.py"
}

// Diagram reports whether the block is rendered as a diagram rather than
// as literal text.
func (i Info) Diagram() bool {
	switch i.Kind {
	case KindDot, KindFunnel, KindRunPython:
		return true
	}
	return false
}

// Classify inspects a block's first line.
func Classify(opener string) Info {
	switch {
	case strings.HasPrefix(opener, "<pre"):
		return Info{Kind: KindPre}
	case strings.HasPrefix(opener, "<code"):
		return Info{Kind: KindCode}
	case !strings.HasPrefix(opener, "```"):
		return Info{Kind: KindIndented}
	}

	raw := strings.TrimSpace(opener[3:])
	tag := strings.ToLower(raw)
	switch {
	case tag == "":
		return Info{Kind: KindFenced}
	case strings.HasPrefix(tag, "dot"):
		return Info{Kind: KindDot}
	case strings.HasPrefix(tag, "funnel"):
		return Info{Kind: KindFunnel}
	case strings.HasPrefix(tag, "run-python"):
		info := Info{Kind: KindRunPython}
		if fields := strings.Fields(raw); len(fields) > 1 {
			info.Arg = fields[1]
		}
		return info
	}
	return Info{Kind: KindFenced, Language: strings.Fields(tag)[0]}
}

// Run is a span of code text sharing one token class.
type Run struct {
	Text   string `yaml:"text"`
	Class  string `yaml:"class"`
	Colour string `yaml:"colour,omitempty"`
	Bold   bool   `yaml:"bold,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`

	Type chroma.TokenType `yaml:"-"`
}

// Line is the runs of one source line.
type Line []Run

// Text returns the line's literal text.
func (l Line) Text() string {
	var b strings.Builder
	for _, r := range l {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Tokenize lexes lines with the lexer registered for lang, falling back to
// plain text when lang is empty or unknown. The result has one Line per
// input line.
func Tokenize(lang string, lines []string) ([]Line, error) {
	out := make([]Line, len(lines))
	if len(lines) == 0 {
		return out, nil
	}

	lexer := lexers.Fallback
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			lexer = l
		}
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenize, err)
	}

	for i, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		if i >= len(out) {
			break
		}
		for _, t := range tokens {
			text := strings.TrimRight(t.Value, "\n")
			if text == "" {
				continue
			}
			out[i] = append(out[i], Run{Text: text, Class: t.Type.String(), Type: t.Type})
		}
	}
	return out, nil
}

// Highlight fills in colours and font styles from a chroma style. An unknown
// style name uses chroma's fallback style.
func Highlight(lines []Line, styleName string) {
	style := styles.Get(styleName)
	for _, line := range lines {
		for i := range line {
			entry := style.Get(line[i].Type)
			if entry.Colour.IsSet() {
				line[i].Colour = entry.Colour.String()
			}
			line[i].Bold = entry.Bold == chroma.Yes
			line[i].Italic = entry.Italic == chroma.Yes
		}
	}
}
