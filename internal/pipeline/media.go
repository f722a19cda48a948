package pipeline

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cblegare/md2pptx/internal/deck"
)

// Default natural sizes of audio and video elements without attributes.
const (
	DefaultVideoWidth  = 1024
	DefaultVideoHeight = 768
	DefaultAudioSize   = 1024
)

const graphicPattern = `!\[(.*?)\]\((.+?)\)`

var (
	graphicRef   = regexp.MustCompile(graphicPattern)
	clickableRef = regexp.MustCompile(`\[` + graphicPattern + `\]\((.+?)\)`)
	videoTag     = regexp.MustCompile(`<video (.*?)></video>`)
	audioTag     = regexp.MustCompile(`<audio (.*?)></audio>`)
)

// isMediaLine reports whether a line starts with a media reference.
func isMediaLine(trimmed string) bool {
	return hasAnyPrefix(trimmed, "<video ", "<audio ", "[![", "![")
}

// ParseMedia parses a single media reference: a graphic, a clickable
// graphic, or a video or audio element. It returns nil when s is none of
// these.
func ParseMedia(s string) *deck.MediaRef {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "<video ") && videoTag.MatchString(s):
		return parseMediaTag(s, deck.MediaVideo)
	case strings.HasPrefix(s, "<audio ") && audioTag.MatchString(s):
		return parseMediaTag(s, deck.MediaAudio)
	}

	if m := clickableRef.FindStringSubmatch(s); m != nil && strings.HasPrefix(s, "[") {
		return &deck.MediaRef{Kind: deck.MediaGraphic, Title: m[1], Source: m[2], Href: m[3]}
	}
	if m := graphicRef.FindStringSubmatch(s); m != nil && strings.HasPrefix(s, "!") {
		return &deck.MediaRef{Kind: deck.MediaGraphic, Title: m[1], Source: m[2]}
	}
	return nil
}

// parseMediaTag reads the attributes of a <video> or <audio> element.
func parseMediaTag(s string, kind deck.MediaKind) *deck.MediaRef {
	ref := &deck.MediaRef{Kind: kind}

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		if tok.Data != string(kind) {
			continue
		}
		for _, a := range tok.Attr {
			switch a.Key {
			case "src":
				ref.Source = a.Val
			case "poster":
				ref.Poster = a.Val
			case "width":
				ref.Width, _ = strconv.Atoi(a.Val)
			case "height":
				ref.Height, _ = strconv.Atoi(a.Val)
			}
		}
		break
	}

	// Audio has no dimensions of its own and is drawn square.
	if kind == deck.MediaAudio {
		ref.Width, ref.Height = DefaultAudioSize, DefaultAudioSize
	}
	return ref
}

// NaturalSize returns the size a video or audio element is laid out with.
// Graphics report false; their size must be probed.
func NaturalSize(ref *deck.MediaRef) (w, h int, ok bool) {
	switch ref.Kind {
	case deck.MediaAudio:
		return DefaultAudioSize, DefaultAudioSize, true
	case deck.MediaVideo:
		w, h = ref.Width, ref.Height
		if w <= 0 {
			w = DefaultVideoWidth
		}
		if h <= 0 {
			h = DefaultVideoHeight
		}
		return w, h, true
	}
	return 0, 0, false
}

type mediaSpan struct {
	start, end int
	text       string
}

// splitMediaRow finds every media reference on a line, ordered by offset.
// Plain graphics already covered by a clickable graphic are dropped.
func splitMediaRow(line string) []string {
	var spans []mediaSpan
	collect := func(re *regexp.Regexp) {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			spans = append(spans, mediaSpan{loc[0], loc[1], line[loc[0]:loc[1]]})
		}
	}
	collect(videoTag)
	collect(audioTag)
	collect(clickableRef)

	for _, loc := range graphicRef.FindAllStringIndex(line, -1) {
		covered := slices.ContainsFunc(spans, func(s mediaSpan) bool {
			return loc[0] >= s.start && loc[1] <= s.end
		})
		if !covered {
			spans = append(spans, mediaSpan{loc[0], loc[1], line[loc[0]:loc[1]]})
		}
	}

	slices.SortFunc(spans, func(a, b mediaSpan) int { return a.start - b.start })

	cells := make([]string, len(spans))
	for i, s := range spans {
		cells[i] = s.text
	}
	return cells
}
