// Package mount describes the filesystems mounted into a container.
//
// A [MountPoint] carries the fields of an OCI mount entry. Its option list
// mixes two kinds of entries: flag names such as "ro" or "nosuid", which map
// onto mount(2) flag bits, and key=value pairs such as "mode=755", which are
// handed to the filesystem as its data string. [MountPoint.Flags] and
// [MountPoint.Data] split the list along that line.
//
// Unknown flag names are rejected rather than ignored, so a typo in a
// security relevant option such as "nosiud" fails the container instead of
// silently mounting without it.
//
// Example usage:
//
//	mp := mount.New("tmpfs", "/tmp", "tmpfs", []string{"nosuid", "mode=1777"})
//	if err := mp.Mount(); err != nil {
//	    return err
//	}
package mount
