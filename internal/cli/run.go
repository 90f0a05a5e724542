package cli

import (
	"context"
	"log/slog"

	"github.com/nrednav/cuid2"

	"github.com/cruciblehq/cr7/internal/runtime"
)

// Represents the 'cr7 run' command.
type RunCmd struct {
	ID      string   `arg:"" optional:"" help:"Container id. Generated when omitted."`
	Bundle  string   `short:"b" default:"." help:"Path to the bundle directory." type:"path"`
	EnvFile []string `name:"env-file" help:"Read extra environment variables from a dotenv file." placeholder:"FILE" type:"path"`
	Rm      bool     `help:"Delete the container once it stops."`
}

// Executes the run command.
//
// Creates and runs the container like create. The command fails with the
// container's exit code when it is not zero.
func (c *RunCmd) Run(ctx context.Context) error {
	vars, err := readEnvFiles(c.EnvFile)
	if err != nil {
		return err
	}

	id := c.ID
	if id == "" {
		id = cuid2.Generate()
		slog.Info("generated container id", "id", id)
	}

	relay, stop := relaySignals()
	defer stop()

	rt := newRuntime()
	ctr, err := rt.Create(id, c.Bundle, runtime.WithEnv(vars...), relay)
	if ctr != nil && c.Rm {
		if rmErr := rt.Delete(id, false); rmErr != nil {
			slog.Warn("cannot delete container", "id", id, "error", rmErr)
		}
	}
	if err != nil {
		return err
	}

	return exitStatus(ctr)
}
