//go:build !unix

package runtime

import (
	"syscall"

	"github.com/containerd/errdefs"
)

func signalProcess(pid int, sig syscall.Signal) error {
	return errdefs.ErrNotImplemented.WithMessage("signals are not supported on this platform")
}

func processAlive(pid int) bool {
	return false
}
