package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/cruciblehq/cr7/internal"
)

// Returns a logger writing to f at the level set by the internal switches.
//
// Terminals get human readable text records; anything else gets JSON, one
// record per line.
func Logger(f *os.File) *slog.Logger {
	return slog.New(newHandler(f, isatty(f)).WithGroup(internal.Name))
}

func newHandler(w io.Writer, terminal bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     internal.LogLevel(),
		AddSource: internal.IsVerbose(),
	}
	if terminal {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Applies the logging flags on top of the build-time defaults and replaces
// the global logger.
func configureLogger() {
	if RootCmd.Debug {
		internal.SetDebug(true)
	}
	if RootCmd.Quiet {
		internal.SetQuiet(true)
	}
	if RootCmd.Verbose {
		internal.SetVerbose(true)
	}

	slog.SetDefault(Logger(os.Stderr))
}
