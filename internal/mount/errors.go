package mount

import "github.com/containerd/errdefs"

var (
	ErrUnknownMountFlag = errdefs.ErrInvalidArgument.WithMessage("unknown mount flag")
	ErrMount            = errdefs.ErrInternal.WithMessage("mount failed")
	ErrNotSupported     = errdefs.ErrNotImplemented.WithMessage("mounts are not supported on this platform")
)
