package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/cblegare/md2pptx/internal/logger"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	Getenv    func(string) string
	Environ   func() []string
	NewLogger func(verbose, quiet bool) (*logger.Logger, error)
}

// DefaultEnv returns the process environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		Environ:   os.Environ,
		NewLogger: newLogger,
	}
}

// newLogger picks the logger for the output control flags: development
// output when verbose, warnings and errors only when quiet.
func newLogger(verbose, quiet bool) (*logger.Logger, error) {
	switch {
	case verbose:
		return logger.New(logger.ModeDevelopment)
	case quiet:
		return logger.NewAt(logger.ModeProduction, zapcore.WarnLevel)
	}
	return logger.New(logger.ModeProduction)
}
