package media

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxSVGBytes bounds how much of an SVG file is read to find its root.
const maxSVGBytes = 1 << 20

// CSS pixels per unit.
var svgUnits = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

// svgSize reads the root element's width and height, falling back to the
// viewBox when either is missing or relative.
func svgSize(r io.Reader) (Size, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSVGBytes))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return Size{}, fmt.Errorf("%w: no <svg> element", ErrUnreadable)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "svg" {
				continue
			}
			attrs := map[string]string{}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				attrs[strings.ToLower(string(k))] = string(v)
			}
			return svgRootSize(attrs)
		}
	}
}

func svgRootSize(attrs map[string]string) (Size, error) {
	w, wok := svgLength(attrs["width"])
	h, hok := svgLength(attrs["height"])
	if wok && hok {
		return Size{Width: w, Height: h}, nil
	}

	fields := strings.FieldsFunc(attrs["viewbox"], func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 4 {
		vw, err1 := strconv.ParseFloat(fields[2], 64)
		vh, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 == nil && err2 == nil && vw > 0 && vh > 0 {
			return Size{Width: int(vw + 0.5), Height: int(vh + 0.5)}, nil
		}
	}
	return Size{}, fmt.Errorf("%w: svg declares no usable size", ErrUnreadable)
}

// svgLength converts an absolute SVG length to pixels. Percentages and
// unknown units are not absolute.
func svgLength(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') && s[i-1] != '.' {
		i--
	}
	factor, ok := svgUnits[strings.ToLower(s[i:])]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v*factor + 0.5), true
}
