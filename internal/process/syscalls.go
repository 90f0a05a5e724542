package process

import (
	"github.com/cruciblehq/cr7/internal/mount"
	"github.com/cruciblehq/cr7/internal/rlimit"
)

// Operating system calls made while preparing a container process.
//
// Every call acts on the calling process. The real implementation is only
// ever used inside the freshly spawned child.
type Syscalls interface {
	Chroot(path string) error
	Chdir(dir string) error
	MakeRootPrivate() error // Stops mounts from propagating back to the host.

	Clearenv()
	Setenv(key, value string) error
	Getenv(key string) (string, bool)
	Environ() []string

	Mount(mp mount.MountPoint) error
	Sethostname(name string) error
	Setrlimit(rl rlimit.Rlimit) error

	LookupHome(uid uint32) (string, error) // Home directory from the container's passwd database.
	InUserNamespace() bool
	Setgroups(gids []uint32) error
	Setgid(gid uint32) error
	Setuid(uid uint32) error

	LookPath(file, path string) (string, error)
	Exec(path string, argv, envv []string) error
}
