package runtime

import (
	"fmt"
	"log/slog"

	"github.com/opencontainers/go-digest"
)

// A container tracked by the runtime.
type Container struct {
	state    State  // Last persisted state.
	store    *Store // Store the state is persisted to.
	exitCode int    // Exit code of the last run, -1 until one finishes.
}

// Returns the container id.
func (c *Container) ID() string {
	return c.state.ID
}

// Returns the current status.
func (c *Container) Status() Status {
	return c.state.Status
}

// Returns the init pid, or 0 if the container never ran.
func (c *Container) Pid() int {
	return c.state.Pid
}

// Returns the bundle directory.
func (c *Container) Bundle() string {
	return c.state.Bundle
}

// Returns the digest of the configuration last used to spawn the container.
func (c *Container) ConfigDigest() digest.Digest {
	return c.state.ConfigDigest
}

// Returns a copy of the persisted state.
func (c *Container) State() State {
	return c.state
}

// Returns the exit code of the run performed by this handle, or -1 if it
// did not run the container to completion.
func (c *Container) ExitCode() int {
	return c.exitCode
}

// Moves the container to next and persists the result.
//
// Returns [ErrInvalidTransition] when the move is not allowed. The
// in-memory state is left unchanged if persisting fails.
func (c *Container) transition(next Status, update func(*State)) error {
	if !c.state.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s: %s to %s", ErrInvalidTransition, c.state.ID, c.state.Status, next)
	}

	st := c.state
	st.Status = next
	if update != nil {
		update(&st)
	}
	if err := c.store.Save(&st); err != nil {
		return err
	}

	c.state = st
	slog.Debug("container status changed", "id", st.ID, "status", st.Status, "pid", st.Pid)
	return nil
}
