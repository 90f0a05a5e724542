package cli

import "fmt"

// Reports a container that exited with a non-zero status. The caller exits
// with the same status.
type ExitError struct {
	Code int // Exit code of the container process.
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("container exited with status %d", e.Code)
}
