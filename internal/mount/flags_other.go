//go:build !linux

package mount

// Returns [ErrNotSupported].
func (m MountPoint) Flags() (uintptr, error) {
	return 0, ErrNotSupported
}

// Accepts any options. They are checked where mounts are supported.
func (m MountPoint) Validate() error {
	return nil
}

// Returns [ErrNotSupported].
func (m MountPoint) Mount() error {
	return ErrNotSupported
}
