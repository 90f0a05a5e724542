package environment

import (
	"fmt"
	"path/filepath"
	"strings"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"github.com/cruciblehq/cr7/internal/mount"
	"github.com/cruciblehq/cr7/internal/namespace"
	"github.com/cruciblehq/cr7/internal/rlimit"
)

const (
	DefaultWorkingDir = "/" // Working directory when none is configured.
)

// Single environment variable.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Returns the variable in KEY=VALUE form.
func (v EnvVar) String() string {
	return v.Key + "=" + v.Value
}

// Identity the container process runs as.
type User struct {
	UID            uint32   `json:"uid"`
	GID            uint32   `json:"gid"`
	AdditionalGids []uint32 `json:"additionalGids,omitempty"`
}

// Execution environment of a container process.
//
// The zero value is not usable; create one with [New] or [FromSpec].
type Environment struct {
	argv        []string
	rootfs      string
	workingDir  string
	hostname    string
	namespaces  namespace.Set
	mounts      []mount.MountPoint
	envVars     []EnvVar
	rlimits     []rlimit.Rlimit
	user        User
	uidMappings []specs.LinuxIDMapping
	gidMappings []specs.LinuxIDMapping
}

// Returns an environment running argv inside rootfs, with the working
// directory at "/" and the process running as root.
//
// Returns [ErrEmptyArgs] when argv is empty.
func New(argv []string, rootfs string) (*Environment, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyArgs
	}
	return &Environment{
		argv:       append([]string(nil), argv...),
		rootfs:     rootfs,
		workingDir: DefaultWorkingDir,
	}, nil
}

// Returns the command line of the container process.
func (e *Environment) Argv() []string {
	return append([]string(nil), e.argv...)
}

// Returns the root filesystem path on the host.
func (e *Environment) Rootfs() string {
	return e.rootfs
}

// Returns the working directory inside the container.
func (e *Environment) WorkingDir() string {
	return e.workingDir
}

// Returns the hostname, and false when none is set.
func (e *Environment) Hostname() (string, bool) {
	return e.hostname, e.hostname != ""
}

// Returns the namespace set. The set must not be modified.
func (e *Environment) Namespaces() *namespace.Set {
	return &e.namespaces
}

// Returns the mount points in declared order.
func (e *Environment) Mounts() []mount.MountPoint {
	return append([]mount.MountPoint(nil), e.mounts...)
}

// Returns the environment variables in declared order.
func (e *Environment) EnvVars() []EnvVar {
	return append([]EnvVar(nil), e.envVars...)
}

// Returns the environment variables in KEY=VALUE form, as passed to execve.
func (e *Environment) Environ() []string {
	out := make([]string, 0, len(e.envVars))
	for _, v := range e.envVars {
		out = append(out, v.String())
	}
	return out
}

// Returns the resource limits in declared order.
func (e *Environment) Rlimits() []rlimit.Rlimit {
	return append([]rlimit.Rlimit(nil), e.rlimits...)
}

// Returns the identity of the container process.
func (e *Environment) User() User {
	u := e.user
	u.AdditionalGids = append([]uint32(nil), e.user.AdditionalGids...)
	return u
}

// Returns the uid and gid mappings of the new user namespace.
func (e *Environment) IDMappings() (uid, gid []specs.LinuxIDMapping) {
	return append([]specs.LinuxIDMapping(nil), e.uidMappings...),
		append([]specs.LinuxIDMapping(nil), e.gidMappings...)
}

// Sets the working directory.
//
// Returns [ErrRelativeWorkingDir] unless dir is absolute.
func (e *Environment) SetWorkingDir(dir string) error {
	if !filepath.IsAbs(dir) {
		return fmt.Errorf("%w: %q", ErrRelativeWorkingDir, dir)
	}
	e.workingDir = dir
	return nil
}

// Sets the hostname.
//
// Returns [ErrHostnameWithoutUTS] unless the namespace set already holds a
// UTS namespace. Setting it would otherwise change the host's name.
func (e *Environment) SetHostname(hostname string) error {
	if !e.namespaces.Contains(namespace.UTS) {
		return ErrHostnameWithoutUTS
	}
	e.hostname = hostname
	return nil
}

// Adds a namespace. See [namespace.Set.Insert].
func (e *Environment) SetNamespace(ns namespace.Namespace) error {
	return e.namespaces.Insert(ns)
}

// Appends a mount point.
//
// Returns [mount.ErrUnknownMountFlag] if an option is neither a known flag
// nor a key=value data option.
func (e *Environment) AddMountPoint(mp mount.MountPoint) error {
	if err := mp.Validate(); err != nil {
		return err
	}
	e.mounts = append(e.mounts, mp)
	return nil
}

// Appends a variable given in KEY=VALUE form.
//
// Returns [ErrMalformedEnvVar] unless the string holds exactly one '=' and
// the key is not empty. "KEY=" sets KEY to the empty string.
func (e *Environment) AddEnvVar(kv string) error {
	if strings.Count(kv, "=") != 1 {
		return fmt.Errorf("%w: %q", ErrMalformedEnvVar, kv)
	}
	key, value, _ := strings.Cut(kv, "=")
	if key == "" {
		return fmt.Errorf("%w: %q", ErrMalformedEnvVar, kv)
	}
	e.envVars = append(e.envVars, EnvVar{Key: key, Value: value})
	return nil
}

// Appends a resource limit.
func (e *Environment) AddRlimit(r rlimit.Rlimit) {
	e.rlimits = append(e.rlimits, r)
}

// Sets the identity of the container process.
func (e *Environment) SetUser(u User) {
	u.AdditionalGids = append([]uint32(nil), u.AdditionalGids...)
	e.user = u
}

// Sets the uid and gid mappings of the user namespace.
//
// Returns [ErrMappingWithoutUserNS] when mappings are given but the
// namespace set does not create a user namespace.
func (e *Environment) SetIDMappings(uid, gid []specs.LinuxIDMapping) error {
	if len(uid)+len(gid) > 0 && !e.namespaces.Creates(namespace.User) {
		return ErrMappingWithoutUserNS
	}
	e.uidMappings = append([]specs.LinuxIDMapping(nil), uid...)
	e.gidMappings = append([]specs.LinuxIDMapping(nil), gid...)
	return nil
}
