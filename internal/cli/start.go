package cli

import (
	"context"

	"github.com/cruciblehq/cr7/internal/runtime"
)

// Represents the 'cr7 start' command.
type StartCmd struct {
	ID      string   `arg:"" help:"Container id."`
	EnvFile []string `name:"env-file" help:"Read extra environment variables from a dotenv file." placeholder:"FILE" type:"path"`
}

// Executes the start command.
//
// Only a stopped container can be started. Its bundle is reloaded and the
// process runs again until it exits. As with create, a non-zero exit code
// of the container becomes the command's.
func (c *StartCmd) Run(ctx context.Context) error {
	vars, err := readEnvFiles(c.EnvFile)
	if err != nil {
		return err
	}

	relay, stop := relaySignals()
	defer stop()

	ctr, err := newRuntime().Start(c.ID, runtime.WithEnv(vars...), relay)
	if err != nil {
		return err
	}
	return exitStatus(ctr)
}
