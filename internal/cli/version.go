package cli

import (
	"context"
	"fmt"

	"github.com/cruciblehq/cr7/internal"
)

// Represents the 'cr7 version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
