package process

import (
	"os"

	"github.com/moby/sys/user"
	"github.com/moby/sys/userns"
	"golang.org/x/sys/unix"

	"github.com/cruciblehq/cr7/internal/mount"
	"github.com/cruciblehq/cr7/internal/rlimit"
)

// Syscalls acting on the calling process.
type linuxSyscalls struct {
	userNS bool // Whether the process started inside a user namespace.
}

// Returns the host implementation of [Syscalls].
//
// User namespace detection reads /proc, so it happens here, before the
// process chroots away from the host's /proc.
func newSyscalls() *linuxSyscalls {
	return &linuxSyscalls{userNS: userns.RunningInUserNS()}
}

func (*linuxSyscalls) Chroot(path string) error { return unix.Chroot(path) }

func (*linuxSyscalls) Chdir(dir string) error { return unix.Chdir(dir) }

func (*linuxSyscalls) MakeRootPrivate() error {
	return unix.Mount("", "/", "", unix.MS_PRIVATE|unix.MS_REC, "")
}

func (*linuxSyscalls) Clearenv() { os.Clearenv() }

func (*linuxSyscalls) Setenv(key, value string) error { return os.Setenv(key, value) }

func (*linuxSyscalls) Getenv(key string) (string, bool) { return os.LookupEnv(key) }

func (*linuxSyscalls) Environ() []string { return os.Environ() }

func (*linuxSyscalls) Mount(mp mount.MountPoint) error { return mp.Mount() }

func (*linuxSyscalls) Sethostname(name string) error { return unix.Sethostname([]byte(name)) }

func (*linuxSyscalls) Setrlimit(rl rlimit.Rlimit) error { return rl.Set() }

func (*linuxSyscalls) LookupHome(uid uint32) (string, error) {
	u, err := user.LookupUid(int(uid))
	if err != nil {
		return "", err
	}
	return u.Home, nil
}

func (s *linuxSyscalls) InUserNamespace() bool { return s.userNS }

func (*linuxSyscalls) Setgroups(gids []uint32) error {
	groups := make([]int, len(gids))
	for i, g := range gids {
		groups[i] = int(g)
	}
	return unix.Setgroups(groups)
}

func (*linuxSyscalls) Setgid(gid uint32) error { return unix.Setgid(int(gid)) }

func (*linuxSyscalls) Setuid(uid uint32) error { return unix.Setuid(int(uid)) }

func (*linuxSyscalls) LookPath(file, path string) (string, error) { return lookPath(file, path) }

func (*linuxSyscalls) Exec(path string, argv, envv []string) error {
	return unix.Exec(path, argv, envv)
}
