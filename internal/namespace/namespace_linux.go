package namespace

import (
	"fmt"

	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"
)

// Returns the CLONE_NEW* flag for the type, or 0 for an unknown type.
func (t Type) CloneFlag() uintptr {
	switch t {
	case PID:
		return unix.CLONE_NEWPID
	case UTS:
		return unix.CLONE_NEWUTS
	case IPC:
		return unix.CLONE_NEWIPC
	case User:
		return unix.CLONE_NEWUSER
	case Mount:
		return unix.CLONE_NEWNS
	case Cgroup:
		return unix.CLONE_NEWCGROUP
	case Network:
		return unix.CLONE_NEWNET
	}
	return 0
}

// Moves the calling thread into the namespace at ns.Path.
//
// The caller must hold the OS thread (runtime.LockOSThread) and should let
// it exit afterwards. The kernel refuses to move a multi-threaded process
// into another mount or user namespace, so joining those fails with EINVAL.
func Join(ns Namespace) error {
	if !ns.IsJoin() {
		return fmt.Errorf("%w: %s: no path to join", ErrJoin, ns.Type)
	}

	handle, err := netns.GetFromPath(ns.Path)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrJoin, ns.Type, ns.Path, err)
	}
	defer handle.Close()

	if err := netns.Setns(handle, int(ns.Type.CloneFlag())); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrJoin, ns.Type, ns.Path, err)
	}
	return nil
}
