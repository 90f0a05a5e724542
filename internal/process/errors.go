package process

import "github.com/containerd/errdefs"

var (
	ErrSpawn        = errdefs.ErrInternal.WithMessage("cannot spawn container process")
	ErrSetup        = errdefs.ErrInternal.WithMessage("container setup failed")
	ErrWait         = errdefs.ErrInternal.WithMessage("cannot wait for container process")
	ErrNotSupported = errdefs.ErrNotImplemented.WithMessage("container processes are not supported on this platform")
)
