package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/cruciblehq/cr7/internal"
	"github.com/cruciblehq/cr7/internal/cli"
)

// The entry point for cr7.
//
// Initializes logging, displays startup information, and executes the root
// command. A container that exits with a non-zero status makes cr7 exit with
// the same status; any other error exits with 1.
func main() {
	slog.SetDefault(cli.Logger(os.Stderr))

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("cr7 is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
