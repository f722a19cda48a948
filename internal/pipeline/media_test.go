package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cblegare/md2pptx/internal/deck"
)

func TestParseMedia(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *deck.MediaRef
	}{
		{
			name:  "graphic",
			input: "![Logo](img/logo.png)",
			want:  &deck.MediaRef{Kind: deck.MediaGraphic, Title: "Logo", Source: "img/logo.png"},
		},
		{
			name:  "clickable graphic",
			input: "[![Logo](logo.svg)](https://example.com)",
			want:  &deck.MediaRef{Kind: deck.MediaGraphic, Title: "Logo", Source: "logo.svg", Href: "https://example.com"},
		},
		{
			name:  "video with size and poster",
			input: `<video src="demo.mp4" width="640" height="360" poster="demo.png"></video>`,
			want:  &deck.MediaRef{Kind: deck.MediaVideo, Source: "demo.mp4", Width: 640, Height: 360, Poster: "demo.png"},
		},
		{
			name:  "audio is square",
			input: `<audio src="talk.mp3"></audio>`,
			want:  &deck.MediaRef{Kind: deck.MediaAudio, Source: "talk.mp3", Width: 1024, Height: 1024},
		},
		{
			name:  "plain text",
			input: "hello",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, ParseMedia(tt.input)); diff != "" {
				t.Errorf("ParseMedia() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNaturalSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ref    *deck.MediaRef
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"video default", &deck.MediaRef{Kind: deck.MediaVideo}, 1024, 768, true},
		{"video declared", &deck.MediaRef{Kind: deck.MediaVideo, Width: 320, Height: 240}, 320, 240, true},
		{"audio", &deck.MediaRef{Kind: deck.MediaAudio}, 1024, 1024, true},
		{"graphic needs probing", &deck.MediaRef{Kind: deck.MediaGraphic}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, ok := NaturalSize(tt.ref)
			if w != tt.wantW || h != tt.wantH || ok != tt.wantOK {
				t.Errorf("NaturalSize() = %d, %d, %v; want %d, %d, %v", w, h, ok, tt.wantW, tt.wantH, tt.wantOK)
			}
		})
	}
}

func TestSplitMediaRow(t *testing.T) {
	t.Parallel()

	line := `[![a](a.png)](https://a) <video src="v.mp4"></video> ![b](b.png)`
	want := []string{"[![a](a.png)](https://a)", `<video src="v.mp4"></video>`, "![b](b.png)"}
	if diff := cmp.Diff(want, splitMediaRow(line)); diff != "" {
		t.Errorf("splitMediaRow() mismatch (-want +got):\n%s", diff)
	}
}
