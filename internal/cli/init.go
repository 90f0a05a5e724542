package cli

import (
	"context"
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/cruciblehq/cr7/internal/process"
)

// Container processes apply their environment with thread-scoped syscalls,
// so they stay on the main thread from the start.
func init() {
	if len(os.Args) > 1 && os.Args[1] == process.InitCommand {
		goruntime.GOMAXPROCS(1)
		goruntime.LockOSThread()
	}
}

// Represents the hidden 'cr7 init' command.
type InitCmd struct{}

// Executes the init command.
//
// Runs inside a freshly spawned container process. Does not return on
// success; on failure the error has been reported to the parent and the
// process exits with [process.ExitSetupFailed].
func (c *InitCmd) Run(ctx context.Context) error {
	err := process.Init()
	slog.Debug("container setup failed", "error", err)
	os.Exit(process.ExitSetupFailed)
	return nil
}
