package namespace

import (
	"fmt"

	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// Kind of Linux namespace.
type Type int

const (
	PID Type = iota + 1
	UTS
	IPC
	User
	Mount
	Cgroup
	Network
)

// OCI names of each namespace type, as found in config.json.
var typeNames = map[Type]specs.LinuxNamespaceType{
	PID:     specs.PIDNamespace,
	UTS:     specs.UTSNamespace,
	IPC:     specs.IPCNamespace,
	User:    specs.UserNamespace,
	Mount:   specs.MountNamespace,
	Cgroup:  specs.CgroupNamespace,
	Network: specs.NetworkNamespace,
}

// Resolves an OCI namespace name ("pid", "network", ...) to its [Type].
//
// Returns [ErrInvalidType] for names outside the supported set, including
// namespaces newer than the runtime such as "time".
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if string(n) == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, name)
}

// Returns the OCI name of the type.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return string(n)
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Encodes the type by its OCI name.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(t))
	}
	return []byte(t.String()), nil
}

// Decodes a type from its OCI name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// A namespace the container is placed in.
type Namespace struct {
	Type Type   `json:"type"`           // Kind of namespace.
	Path string `json:"path,omitempty"` // Namespace to join. Empty creates a new one.
}

// Returns a namespace of the given type. An empty path creates a new
// namespace, a non-empty path joins the one it refers to.
func New(t Type, path string) Namespace {
	return Namespace{Type: t, Path: path}
}

// Returns true if the namespace is joined rather than created.
func (ns Namespace) IsJoin() bool {
	return ns.Path != ""
}
