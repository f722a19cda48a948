package main

import (
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/cblegare/md2pptx/internal/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		if log, err := logger.New(logger.ModeDevelopment); err == nil {
			_, _ = maxprocs.Set(maxprocs.Logger(log.Infof))
			_ = log.Sync()
		}
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}
