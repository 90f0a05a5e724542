//go:build !linux

package namespace

// Returns 0; namespaces only exist on Linux.
func (t Type) CloneFlag() uintptr {
	return 0
}

// Returns [ErrNotSupported].
func Join(ns Namespace) error {
	return ErrNotSupported
}
