package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cruciblehq/cr7/internal"
	"github.com/cruciblehq/cr7/internal/paths"
	"github.com/cruciblehq/cr7/internal/process"
	"github.com/cruciblehq/cr7/internal/runtime"
)

// Represents the root command for cr7.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Include source locations in log output."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Root    string     `help:"Override the container state directory." placeholder:"DIR" type:"path"`
	Create  CreateCmd  `cmd:"" help:"Create a container from a bundle and run it."`
	Run     RunCmd     `cmd:"" help:"Create and run a container, generating an id if none is given."`
	Start   StartCmd   `cmd:"" help:"Run a stopped container again."`
	State   StateCmd   `cmd:"" help:"Print the state of a container."`
	List    ListCmd    `cmd:"" help:"List containers."`
	Kill    KillCmd    `cmd:"" help:"Send a signal to a running container."`
	Delete  DeleteCmd  `cmd:"" help:"Delete a container."`
	Version VersionCmd `cmd:"" help:"Show version information."`
	Init    InitCmd    `cmd:"" hidden:"" help:"Container process entry point."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {
	ctx := context.Background()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("A container runtime.\n\nRuns OCI bundles in Linux namespaces and tracks their lifecycle on disk."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Returns the spawner container processes are started with.
var newSpawner = func() runtime.Spawner {
	return process.NewSpawner()
}

// Returns the runtime for the configured state directory.
func newRuntime() *runtime.Runtime {
	dir := RootCmd.Root
	if dir == "" {
		dir = paths.State()
	}
	return runtime.New(dir, newSpawner())
}

// Whether the given file is an interactive terminal.
func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
