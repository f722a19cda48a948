package codeblock

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opener string
		want   Info
	}{
		{"```", Info{Kind: KindFenced}},
		{"```go", Info{Kind: KindFenced, Language: "go"}},
		{"```Python extra", Info{Kind: KindFenced, Language: "python"}},
		{"```dot", Info{Kind: KindDot}},
		{"```funnel", Info{Kind: KindFunnel}},
		{"```run-python", Info{Kind: KindRunPython}},
		{"```run-python chart.py", Info{Kind: KindRunPython, Arg: "chart.py"}},
		{"<pre>", Info{Kind: KindPre}},
		{"<code>", Info{Kind: KindCode}},
		{"    ", Info{Kind: KindIndented}},
	}

	for _, tt := range tests {
		t.Run(tt.opener, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Classify(tt.opener)); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.opener, diff)
			}
		})
	}
}

func TestInfo_Diagram(t *testing.T) {
	t.Parallel()

	if !(Info{Kind: KindDot}).Diagram() {
		t.Error("dot should be a diagram")
	}
	if (Info{Kind: KindFenced, Language: "go"}).Diagram() {
		t.Error("go code should not be a diagram")
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lang  string
		lines []string
	}{
		{"go", "go", []string{"func main() {", "\tx := 1", "}"}},
		{"unknown language", "no-such-lexer", []string{"plain", "text"}},
		{"blank lines kept", "", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Tokenize(tt.lang, tt.lines)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if len(got) != len(tt.lines) {
				t.Fatalf("got %d lines, want %d", len(got), len(tt.lines))
			}
			for i, line := range got {
				if line.Text() != tt.lines[i] {
					t.Errorf("line %d = %q, want %q", i, line.Text(), tt.lines[i])
				}
			}
		})
	}
}

func TestTokenize_GoKeyword(t *testing.T) {
	t.Parallel()

	got, err := Tokenize("go", []string{"func main() {}"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(got[0]) == 0 || got[0][0].Text != "func" {
		t.Fatalf("first run = %v, want func", got[0])
	}
	if got[0][0].Class == "Text" {
		t.Errorf("func classified as plain text")
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	lines, err := Tokenize("go", []string{"func main() {}"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	Highlight(lines, DefaultStyle)
	if lines[0][0].Colour == "" {
		t.Errorf("keyword run has no colour: %+v", lines[0][0])
	}
}
