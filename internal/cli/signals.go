package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cruciblehq/cr7/internal/runtime"
)

// Signals relayed to a running container instead of ending cr7.
var relayedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// Starts catching [relayedSignals] and returns the option that forwards them
// to the container, along with a function that restores default handling.
func relaySignals() (runtime.CreateOption, func()) {
	sigs := make(chan os.Signal, len(relayedSignals))
	signal.Notify(sigs, relayedSignals...)
	return runtime.WithSignals(sigs), func() { signal.Stop(sigs) }
}

// Returns an [ExitError] when the container exited with a non-zero status.
func exitStatus(ctr *runtime.Container) error {
	if code := ctr.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
