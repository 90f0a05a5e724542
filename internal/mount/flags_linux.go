package mount

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Bits contributed by each flag option. Options that clear a default (rw,
// suid, dev, ...) contribute nothing.
var flagTable = map[string]uintptr{
	"defaults":      0,
	"ro":            unix.MS_RDONLY,
	"rdonly":        unix.MS_RDONLY,
	"rw":            0,
	"nosuid":        unix.MS_NOSUID,
	"suid":          0,
	"nodev":         unix.MS_NODEV,
	"dev":           0,
	"noexec":        unix.MS_NOEXEC,
	"exec":          0,
	"sync":          unix.MS_SYNCHRONOUS,
	"synchronous":   unix.MS_SYNCHRONOUS,
	"async":         0,
	"remount":       unix.MS_REMOUNT,
	"mand":          unix.MS_MANDLOCK,
	"mandlock":      unix.MS_MANDLOCK,
	"nomand":        0,
	"dirsync":       unix.MS_DIRSYNC,
	"atime":         0,
	"noatime":       unix.MS_NOATIME,
	"diratime":      0,
	"nodiratime":    unix.MS_NODIRATIME,
	"bind":          unix.MS_BIND,
	"rbind":         unix.MS_BIND | unix.MS_REC,
	"move":          unix.MS_MOVE,
	"rec":           unix.MS_REC,
	"silent":        unix.MS_SILENT,
	"posixacl":      unix.MS_POSIXACL,
	"unbindable":    unix.MS_UNBINDABLE,
	"runbindable":   unix.MS_UNBINDABLE | unix.MS_REC,
	"private":       unix.MS_PRIVATE,
	"rprivate":      unix.MS_PRIVATE | unix.MS_REC,
	"slave":         unix.MS_SLAVE,
	"rslave":        unix.MS_SLAVE | unix.MS_REC,
	"shared":        unix.MS_SHARED,
	"rshared":       unix.MS_SHARED | unix.MS_REC,
	"relatime":      unix.MS_RELATIME,
	"norelatime":    0,
	"strictatime":   unix.MS_STRICTATIME,
	"nostrictatime": 0,
	"i_version":     unix.MS_I_VERSION,
	"lazytime":      unix.MS_LAZYTIME,
}

// Returns the mount(2) flags for the flag options.
//
// Options containing '=' are data options and are skipped. Returns
// [ErrUnknownMountFlag] for any other option missing from the flag table.
func (m MountPoint) Flags() (uintptr, error) {
	flags, _ := m.partition()

	var bits uintptr
	for _, opt := range flags {
		b, ok := flagTable[opt]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownMountFlag, opt)
		}
		bits |= b
	}
	return bits, nil
}

// Returns [ErrUnknownMountFlag] if an option is not a known flag name.
func (m MountPoint) Validate() error {
	_, err := m.Flags()
	return err
}

// Mounts the filesystem at its destination.
//
// The destination must already exist. Failures are wrapped in [ErrMount]
// together with the source, destination and filesystem type.
func (m MountPoint) Mount() error {
	flags, err := m.Flags()
	if err != nil {
		return err
	}
	data, _ := m.Data()

	if err := unix.Mount(m.Source, m.Destination, m.Type, flags, data); err != nil {
		return fmt.Errorf("%w: source %q destination %q type %q: %w", ErrMount, m.Source, m.Destination, m.Type, err)
	}
	return nil
}
