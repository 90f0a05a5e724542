package cli

import (
	"context"

	"github.com/moby/sys/signal"
)

// Represents the 'cr7 kill' command.
type KillCmd struct {
	ID     string `arg:"" help:"Container id."`
	Signal string `arg:"" optional:"" default:"TERM" help:"Signal name or number (default TERM)."`
}

// Executes the kill command.
func (c *KillCmd) Run(ctx context.Context) error {
	sig, err := signal.ParseSignal(c.Signal)
	if err != nil {
		return err
	}
	return newRuntime().Kill(c.ID, sig)
}
