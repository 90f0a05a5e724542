package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cruciblehq/cr7/internal/runtime"
)

// Represents the 'cr7 list' command.
type ListCmd struct {
	IDs bool `name:"ids" help:"Only print container ids."`
}

// Executes the list command.
func (c *ListCmd) Run(ctx context.Context) error {
	containers, err := newRuntime().List()
	if err != nil {
		return err
	}
	return writeList(os.Stdout, containers, c.IDs)
}

// Writes one line per container, as a table unless idsOnly is set.
func writeList(w io.Writer, containers []*runtime.Container, idsOnly bool) error {
	if idsOnly {
		for _, ctr := range containers {
			if _, err := fmt.Fprintln(w, ctr.ID()); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPID\tSTATUS\tBUNDLE")
	for _, ctr := range containers {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", ctr.ID(), ctr.Pid(), ctr.Status(), ctr.Bundle())
	}
	return tw.Flush()
}
