package rlimit

import "github.com/containerd/errdefs"

var (
	ErrUnknownResource = errdefs.ErrInvalidArgument.WithMessage("unknown rlimit resource")
	ErrSetRlimit       = errdefs.ErrInternal.WithMessage("cannot set rlimit")
	ErrNotSupported    = errdefs.ErrNotImplemented.WithMessage("rlimits are not supported on this platform")
)
