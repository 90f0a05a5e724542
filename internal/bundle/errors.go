package bundle

import "github.com/containerd/errdefs"

var (
	ErrBundleNotFound = errdefs.ErrNotFound.WithMessage("bundle not found")
	ErrConfigNotFound = errdefs.ErrNotFound.WithMessage("bundle config not found")
	ErrRootfsNotFound = errdefs.ErrNotFound.WithMessage("root filesystem not found")
	ErrConfigSyntax   = errdefs.ErrInvalidArgument.WithMessage("malformed bundle config")
	ErrConfigData     = errdefs.ErrInvalidArgument.WithMessage("invalid bundle config")
)
