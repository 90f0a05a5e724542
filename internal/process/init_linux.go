package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/cruciblehq/cr7/internal/environment"
)

const (
	ExitSetupFailed = 125 // Exit status of a child that failed before executing the program.
)

// Entry point of the container process.
//
// Reads the plan from the sync pipe, applies it and executes the program.
// Only returns on failure, after the error has been reported to the parent.
// The caller must exit with [ExitSetupFailed].
func Init() error {
	if _, err := unix.FcntlInt(syncFd, unix.F_GETFD, 0); err != nil {
		return fmt.Errorf("%w: no sync pipe: %w", ErrSetup, err)
	}
	unix.CloseOnExec(syncFd)
	pipe := os.NewFile(syncFd, "sync pipe")

	err := setup(pipe)
	pipe.Write([]byte(err.Error()))
	pipe.Close()
	return err
}

// Applies the plan read from pipe. Returns only on failure.
func setup(pipe *os.File) error {
	var env environment.Environment
	if err := json.NewDecoder(pipe).Decode(&env); err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}

	if err := Apply(newSyscalls(), Plan(&env)); err != nil {
		return err
	}
	return errors.New("program returned without executing")
}
