package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "deck.md")
	writeFile(t, in, "### A\n")

	tests := []struct {
		name      string
		outputDir string
		want      string
	}{
		{"next to source", "", filepath.Join(dir, "deck.layout.yaml")},
		{"output dir", filepath.Join(dir, "out"), filepath.Join(dir, "out", "deck.layout.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := discoverFiles(in, tt.outputDir)
			if err != nil {
				t.Fatalf("discoverFiles() error = %v", err)
			}
			want := []FileToConvert{{InputPath: in, OutputPath: tt.want}}
			if diff := cmp.Diff(want, files); diff != "" {
				t.Errorf("files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "### A\n")
	writeFile(t, filepath.Join(dir, "sub", "b.markdown"), "### B\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip")

	out := filepath.Join(t.TempDir(), "out")
	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.OutputPath)
	}
	sort.Strings(got)
	want := []string{
		filepath.Join(out, "a.layout.yaml"),
		filepath.Join(out, "sub", "b.layout.yaml"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "deck.txt")
	writeFile(t, txt, "x")

	if _, err := discoverFiles(txt, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(.txt) error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.md"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discoverFiles(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestWireframePath(t *testing.T) {
	t.Parallel()

	f := FileToConvert{OutputPath: filepath.Join("out", "deck.layout.yaml")}
	if got, want := f.wireframePath(7), filepath.Join("out", "deck-007.png"); got != want {
		t.Errorf("wireframePath(7) = %q, want %q", got, want)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"auto", 0, false},
		{"one", 1, false},
		{"max", maxWorkers, false},
		{"negative", -1, true},
		{"too many", maxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}
