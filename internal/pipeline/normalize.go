package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cblegare/md2pptx/internal/deck"
)

// IgnoredLine replaces lines consumed by the definition passes so that line
// positions stay stable.
const IgnoredLine = "\x00ignored"

// DirectivePrefix starts an inline option directive.
const DirectivePrefix = "<!-- md2pptx: "

// Precompiled patterns shared by the normalizer and the compiler.
var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	footnoteDefinition = regexp.MustCompile(`^\[\^(.+?)\]: (.+)`)
	indirectReference  = regexp.MustCompile(`^\[(.+?)\]: (.+)`)
	abbreviation       = regexp.MustCompile(`^\*\[(.+?)\]:\s*(.+)`)
)

// Line is one normalized source line. Num is the 1-based line number of its
// first physical line; joined continuation lines keep the number of the line
// they were appended to.
type Line struct {
	Text string
	Num  int
}

// Normalized is the output of the normalizer.
type Normalized struct {
	Lines         []Line
	Metadata      []deck.Metadata
	Footnotes     []deck.Footnote
	References    []deck.Reference
	Abbreviations []deck.GlossaryEntry
	Diagnostics   deck.Diagnostics
}

// LineNormalizer prepares raw Markdown for compilation.
type LineNormalizer interface {
	Normalize(ctx context.Context, content string) (*Normalized, error)
}

// MarkdownNormalizer strips comments and raw HTML, extracts the leading
// metadata block, joins soft-wrapped lines and pulls out footnote, reference
// and abbreviation definitions.
type MarkdownNormalizer struct{}

// Normalize runs the normalization passes in order.
func (n *MarkdownNormalizer) Normalize(ctx context.Context, content string) (*Normalized, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content = norm.NFC.String(crlfOrCR.ReplaceAllString(content, "\n"))
	raw := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	out := &Normalized{}
	body, metadata := stripAndExtract(raw)
	out.Metadata = parseMetadata(metadata, &out.Diagnostics)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := joinContinuations(body)
	extractDefinitions(lines, out)
	out.Lines = lines
	return out, nil
}

// stripAndExtract removes HTML comments and raw HTML blocks and splits off
// the leading metadata block. Directives, anchors, spans, media tags and
// code wrappers pass through.
func stripAndExtract(raw []string) (body []Line, metadata []Line) {
	inMetadata := true
	inComment := false
	inHTML := false
	inCode := false

	for i, text := range raw {
		num := i + 1
		trimmed := strings.TrimSpace(text)

		if inCode {
			if strings.HasPrefix(text, "```") || hasAnyPrefix(trimmed, "</code>", "</pre>") {
				inCode = false
			}
			body = append(body, Line{Text: text, Num: num})
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, DirectivePrefix):
			inMetadata = false
			body = append(body, Line{Text: trimmed, Num: num})
			continue

		case strings.HasPrefix(trimmed, "<!--"):
			inComment = !strings.HasSuffix(trimmed, "-->")
			continue

		case inComment:
			if strings.HasSuffix(trimmed, "-->") {
				inComment = false
			}
			continue

		case strings.HasPrefix(trimmed, "<"):
			inMetadata = false
			switch {
			case hasAnyPrefix(trimmed, "<a id=", "<span ", "<video ", "<audio ", "<hr"):
				body = append(body, Line{Text: text, Num: num})
			case hasAnyPrefix(trimmed, "<code>", "<pre>"):
				inCode = !hasAnySuffix(trimmed, "</code>", "</pre>")
				body = append(body, Line{Text: text, Num: num})
			case hasAnyPrefix(trimmed, "</code>", "</pre>"):
				body = append(body, Line{Text: text, Num: num})
			default:
				inHTML = true
			}
			continue

		case strings.HasPrefix(text, "```"):
			inMetadata = false
			inHTML = false
			inCode = true
			body = append(body, Line{Text: text, Num: num})
			continue

		case strings.HasPrefix(trimmed, "#"):
			inMetadata = false
			inHTML = false

		case trimmed == "":
			inMetadata = false
			inHTML = false

		case inHTML:
			continue
		}

		if inMetadata {
			metadata = append(metadata, Line{Text: text, Num: num})
			continue
		}
		body = append(body, Line{Text: text, Num: num})
	}

	return body, metadata
}

// parseMetadata splits "key: value" lines on their first colon. Malformed
// lines are reported and skipped.
func parseMetadata(lines []Line, diag *deck.Diagnostics) []deck.Metadata {
	var out []deck.Metadata
	for _, l := range lines {
		key, value, ok := strings.Cut(l.Text, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			diag.Warn(deck.WarnMetadata, l.Num, 0, "ignoring invalid metadata line %q", l.Text)
			continue
		}
		out = append(out, deck.Metadata{Key: key, Value: value, Line: l.Num})
	}
	return out
}

// joinContinuations appends soft-wrapped lines to the line they continue.
func joinContinuations(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	inCode := false
	previous := ""

	for _, l := range lines {
		text := l.Text
		trimmed := strings.TrimSpace(text)

		switch {
		case hasAnyPrefix(text, "<pre>", "<code>"):
			inCode = !hasAnySuffix(trimmed, "</pre>", "</code>")
			out = append(out, l)
		case hasAnyPrefix(text, "</pre>", "</code>"):
			inCode = false
			out = append(out, l)
		case strings.HasPrefix(text, "```"):
			inCode = !inCode
			out = append(out, l)
		case inCode, trimmed == "", strings.TrimSpace(previous) == "", len(out) == 0:
			out = append(out, l)
		case startsBlock(trimmed), standsAlone(previous):
			out = append(out, l)
		default:
			last := &out[len(out)-1]
			last.Text = strings.TrimRight(last.Text, " \t") + " " + trimmed
		}

		previous = text
	}

	return out
}

// startsBlock reports whether a trimmed line begins a new block rather than
// continuing a paragraph.
func startsBlock(trimmed string) bool {
	switch trimmed[0] {
	case '*', '#', '|', '!', '\\', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return hasAnyPrefix(trimmed, DirectivePrefix, "<a id=", "<video ", "<audio ", "<hr", "[![", "[") &&
		(strings.HasPrefix(trimmed, "<") || strings.HasPrefix(trimmed, "[![") || isDefinition(trimmed))
}

// standsAlone reports whether nothing may be appended to a line: headings,
// table rows, fences, rules, tags and indented code.
func standsAlone(previous string) bool {
	trimmed := strings.TrimSpace(previous)
	return strings.HasPrefix(trimmed, "#") ||
		isRule(trimmed) ||
		strings.HasPrefix(trimmed, "```") ||
		strings.HasPrefix(trimmed, "|") ||
		strings.HasPrefix(previous, "    ") ||
		strings.HasPrefix(trimmed, "<")
}

// isDefinition reports whether a line defines a footnote or reference.
func isDefinition(trimmed string) bool {
	return footnoteDefinition.MatchString(trimmed) || indirectReference.MatchString(trimmed)
}

// extractDefinitions records footnote, reference and abbreviation
// definitions in order and blanks their lines with IgnoredLine.
func extractDefinitions(lines []Line, out *Normalized) {
	inCode := false
	for i := range lines {
		text := strings.TrimRight(lines[i].Text, " \t")

		if strings.HasPrefix(text, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		if m := footnoteDefinition.FindStringSubmatch(text); m != nil {
			out.Footnotes = append(out.Footnotes, deck.Footnote{
				Ref:  strings.TrimSpace(m[1]),
				Text: strings.TrimSpace(m[2]),
			})
			lines[i].Text = IgnoredLine
			continue
		}

		if m := abbreviation.FindStringSubmatch(text); m != nil {
			out.Abbreviations = append(out.Abbreviations, deck.GlossaryEntry{
				Term:    strings.TrimSpace(m[1]),
				Meaning: strings.TrimSpace(m[2]),
			})
			lines[i].Text = IgnoredLine
			continue
		}

		if m := indirectReference.FindStringSubmatch(text); m != nil {
			out.References = append(out.References, deck.Reference{
				Name: strings.TrimSpace(m[1]),
				URL:  strings.TrimSpace(m[2]),
			})
			lines[i].Text = IgnoredLine
		}
	}
}

// hasAnyPrefix reports whether s starts with any of the prefixes.
func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
