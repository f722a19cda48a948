package main

import (
	"bytes"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cblegare/md2pptx/internal/logger"
)

const sampleDeck = "### Agenda\n* one\n* two\n\n### Numbers\n| a | b |\n|---|---|\n| 1 | 2 |\n"

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnv {
	var stdout, stderr bytes.Buffer
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &testEnv{
		Environment: &Environment{
			Now:       func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
			Stdout:    &stdout,
			Stderr:    &stderr,
			Getenv:    mapGetenv(vars),
			Environ:   func() []string { return environ },
			NewLogger: func(bool, bool) (*logger.Logger, error) { return logger.Nop(), nil },
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"md2pptx"}, ExitUsage, "", "Usage: md2pptx"},
		{"version", []string{"md2pptx", "version"}, ExitSuccess, "md2pptx dev", ""},
		{"help", []string{"md2pptx", "help"}, ExitSuccess, "Commands:", ""},
		{"help convert", []string{"md2pptx", "help", "convert"}, ExitSuccess, "--wireframe", ""},
		{"help unknown", []string{"md2pptx", "help", "nope"}, ExitUsage, "", "Unknown command: nope"},
		{"unknown command", []string{"md2pptx", "render"}, ExitUsage, "", "Unknown command: render"},
		{"convert help", []string{"md2pptx", "convert", "--help"}, ExitSuccess, "", "Usage: md2pptx convert"},
		{"bad flag", []string{"md2pptx", "convert", "--nope"}, ExitUsage, "", "error:"},
		{"no input", []string{"md2pptx", "convert"}, ExitIO, "", "no input specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			if got := runMain(tt.args, env.Environment); got != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", got, tt.wantCode, env.stderr.String())
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "deck.md")
	writeFile(t, in, sampleDeck)
	out := filepath.Join(dir, "out")

	env := newTestEnv(nil)
	code := runMain([]string{"md2pptx", "convert", in, "-o", out, "--wireframe", "--dpi", "48", "-m", "standard43"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}

	layoutPath := filepath.Join(out, "deck.layout.yaml")
	data, err := os.ReadFile(layoutPath)
	if err != nil {
		t.Fatalf("reading layout: %v", err)
	}
	if !bytes.Contains(data, []byte("master: standard43")) {
		t.Errorf("layout does not name the master:\n%s", data)
	}
	for _, name := range []string{"deck-001.png", "deck-002.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("wireframe %s: %v", name, err)
		}
	}

	png, err := os.Open(filepath.Join(out, "deck-001.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer png.Close()
	cfg, _, err := image.DecodeConfig(png)
	if err != nil {
		t.Fatalf("decoding wireframe: %v", err)
	}
	if cfg.Width != 480 || cfg.Height != 360 {
		t.Errorf("wireframe size = %dx%d, want 480x360", cfg.Width, cfg.Height)
	}

	if !strings.Contains(env.stdout.String(), "Created "+layoutPath) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRunMain_MarkdownShorthand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "talk.md")
	writeFile(t, in, sampleDeck)

	env := newTestEnv(nil)
	if code := runMain([]string{"md2pptx", in, "-q"}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "talk.layout.yaml")); err != nil {
		t.Errorf("layout not written: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet run wrote %q", env.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "talk-001.png")); err == nil {
		t.Error("wireframe written without --wireframe")
	}
}

func TestRunMain_EnvAndErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in", "a.md"), sampleDeck)
	writeFile(t, filepath.Join(dir, "in", "empty.md"), "   \n")

	env := newTestEnv(map[string]string{
		"MD2PPTX_INPUT_DIR":  filepath.Join(dir, "in"),
		"MD2PPTX_OUTPUT_DIR": filepath.Join(dir, "out"),
	})
	code := runMain([]string{"md2pptx", "convert"}, env.Environment)
	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d (empty deck fails)", code, ExitUsage)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "a.layout.yaml")); err != nil {
		t.Errorf("valid deck not converted: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "FAILED") || !strings.Contains(env.stdout.String(), "1 succeeded, 1 failed") {
		t.Errorf("stdout = %q stderr = %q", env.stdout.String(), env.stderr.String())
	}
}

func TestRunMain_SetupErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "deck.md")
	writeFile(t, in, sampleDeck)

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{"unknown master", []string{"-m", "nope"}, "available masters: default, standard43"},
		{"bad override", []string{"--set", "novalue"}, "invalid style override"},
		{"unknown option", []string{"--set", "noSuchOption=1"}, "unknown"},
		{"too many workers", []string{"-w", "65"}, "invalid worker count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			args := append([]string{"md2pptx", "convert", in}, tt.args...)
			if code := runMain(args, env.Environment); code != ExitUsage {
				t.Errorf("runMain() = %d, want %d", code, ExitUsage)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "deck.md")
	writeFile(t, in, sampleDeck)
	cfgPath := filepath.Join(dir, "md2pptx.yaml")
	writeFile(t, cfgPath, "output:\n  format: wireframe\n  wireframeDPI: 24\nstyle:\n  baseTextSize: \"20\"\n")

	env := newTestEnv(nil)
	if code := runMain([]string{"md2pptx", "convert", in, "-c", cfgPath}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "deck.layout.yaml")); err == nil {
		t.Error("layout written for wireframe-only output")
	}
	if _, err := os.Stat(filepath.Join(dir, "deck-001.png")); err != nil {
		t.Errorf("wireframe not written: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Created "+filepath.Join(dir, "deck-001.png")) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}
