package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{ModeDevelopment, true},
		{"dev", true},
		{ModeProduction, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.mode)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.mode, err)
			}
			got := l.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel)
			if got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNewAt(t *testing.T) {
	t.Parallel()

	l, err := NewAt(ModeProduction, zapcore.WarnLevel)
	if err != nil {
		t.Fatalf("NewAt() error = %v", err)
	}
	core := l.SugaredLogger.Desugar().Core()
	if core.Enabled(zapcore.InfoLevel) || !core.Enabled(zapcore.WarnLevel) {
		t.Error("NewAt(warn) should drop info and keep warn")
	}
}

func TestLogger_Fields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("file", "deck.md")

	l.Warn("unresolved link", "slide", 3, "line", 12)
	l.Infof("workers %d", 4)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["file"] != "deck.md" || fields["slide"] != int64(3) || fields["line"] != int64(12) {
		t.Errorf("fields = %v", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if entries[1].Message != "workers 4" {
		t.Errorf("message = %q, want %q", entries[1].Message, "workers 4")
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := Nop()
	l.Error("discarded")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
