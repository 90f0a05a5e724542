//go:build !linux

package rlimit

// Returns [ErrNotSupported].
func (r Rlimit) Set() error {
	return ErrNotSupported
}
