package namespace

import "github.com/containerd/errdefs"

var (
	ErrInvalidType        = errdefs.ErrInvalidArgument.WithMessage("invalid namespace type")
	ErrDuplicateNamespace = errdefs.ErrInvalidArgument.WithMessage("duplicated namespace")
	ErrJoin               = errdefs.ErrInternal.WithMessage("cannot join namespace")
	ErrNotSupported       = errdefs.ErrNotImplemented.WithMessage("namespaces are not supported on this platform")
)
