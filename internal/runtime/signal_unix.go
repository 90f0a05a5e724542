//go:build unix

package runtime

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

func signalProcess(pid int, sig syscall.Signal) error {
	return unix.Kill(pid, sig)
}

// Returns true if a process with the given pid exists.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
