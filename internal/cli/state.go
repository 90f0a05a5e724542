package cli

import (
	"context"
	"fmt"
)

// Represents the 'cr7 state' command.
type StateCmd struct {
	ID string `arg:"" help:"Container id."`
}

// Executes the state command.
func (c *StateCmd) Run(ctx context.Context) error {
	out, err := newRuntime().State(c.ID)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
