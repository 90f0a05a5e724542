package runtime

import "github.com/containerd/errdefs"

var (
	ErrContainerExists   = errdefs.ErrAlreadyExists.WithMessage("container already exists")
	ErrNotFound          = errdefs.ErrNotFound.WithMessage("container not found")
	ErrInvalidID         = errdefs.ErrInvalidArgument.WithMessage("invalid container id")
	ErrInvalidTransition = errdefs.ErrFailedPrecondition.WithMessage("invalid status transition")
	ErrNotRunning        = errdefs.ErrFailedPrecondition.WithMessage("container is not running")
	ErrRunning           = errdefs.ErrFailedPrecondition.WithMessage("container is running")
	ErrCorruptState      = errdefs.ErrDataLoss.WithMessage("corrupt container state")
)
