package mount

import "strings"

// A filesystem mounted into the container.
type MountPoint struct {
	Source      string   `json:"source,omitempty"`  // Device, directory or pseudo source. May be empty.
	Destination string   `json:"destination"`       // Mount target inside the container.
	Type        string   `json:"type,omitempty"`    // Filesystem type. May be empty for bind mounts.
	Options     []string `json:"options,omitempty"` // Flag names and key=value data options.
}

// Returns a mount point with the given fields.
func New(source, destination, fstype string, options []string) MountPoint {
	return MountPoint{
		Source:      source,
		Destination: destination,
		Type:        fstype,
		Options:     options,
	}
}

// Returns the data options joined by commas, and false when there are none.
func (m MountPoint) Data() (string, bool) {
	_, data := m.partition()
	if len(data) == 0 {
		return "", false
	}
	return strings.Join(data, ","), true
}

// Splits the options into flag names and key=value data options, each in
// declared order.
func (m MountPoint) partition() (flags, data []string) {
	for _, opt := range m.Options {
		if isData(opt) {
			data = append(data, opt)
		} else {
			flags = append(flags, opt)
		}
	}
	return flags, data
}

func isData(opt string) bool {
	return strings.Contains(opt, "=")
}
