package cli

import "context"

// Represents the 'cr7 delete' command.
type DeleteCmd struct {
	ID    string `arg:"" help:"Container id."`
	Force bool   `short:"f" help:"Kill the container process if it is still running."`
}

// Executes the delete command.
func (c *DeleteCmd) Run(ctx context.Context) error {
	return newRuntime().Delete(c.ID, c.Force)
}
