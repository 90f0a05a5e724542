package environment

import "github.com/containerd/errdefs"

var (
	ErrEmptyArgs            = errdefs.ErrInvalidArgument.WithMessage("process args must not be empty")
	ErrRelativeWorkingDir   = errdefs.ErrInvalidArgument.WithMessage("working directory must be an absolute path")
	ErrHostnameWithoutUTS   = errdefs.ErrInvalidArgument.WithMessage("hostname requires a UTS namespace")
	ErrMalformedEnvVar      = errdefs.ErrInvalidArgument.WithMessage("malformed environment variable")
	ErrMappingWithoutUserNS = errdefs.ErrInvalidArgument.WithMessage("id mappings require a new user namespace")
)
