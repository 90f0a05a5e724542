package cli

import (
	"context"

	"github.com/cruciblehq/cr7/internal/runtime"
)

// Represents the 'cr7 create' command.
type CreateCmd struct {
	ID      string   `arg:"" help:"Container id."`
	Bundle  string   `short:"b" default:"." help:"Path to the bundle directory." type:"path"`
	EnvFile []string `name:"env-file" help:"Read extra environment variables from a dotenv file." placeholder:"FILE" type:"path"`
}

// Executes the create command.
//
// Builds the container from the bundle, runs its process and blocks until
// it exits. The container is left in the stopped state, and the command
// fails with the container's exit code when it is not zero.
func (c *CreateCmd) Run(ctx context.Context) error {
	vars, err := readEnvFiles(c.EnvFile)
	if err != nil {
		return err
	}

	relay, stop := relaySignals()
	defer stop()

	ctr, err := newRuntime().Create(c.ID, c.Bundle, runtime.WithEnv(vars...), relay)
	if err != nil {
		return err
	}
	return exitStatus(ctr)
}
