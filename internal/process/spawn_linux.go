package process

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"syscall"

	specs "github.com/opencontainers/runtime-spec/specs-go"
	"golang.org/x/sys/unix"

	"github.com/cruciblehq/cr7/internal"
	"github.com/cruciblehq/cr7/internal/environment"
	"github.com/cruciblehq/cr7/internal/namespace"
)

const (
	InitCommand = "init"           // Hidden command the child is started with.
	selfExe     = "/proc/self/exe" // Binary re-executed as the child.
	syncFd      = 3                // Descriptor of the sync pipe in the child.
)

// Starts and waits for container processes.
type Spawner struct {
	Path   string   // Executable started as the child. Empty means the running binary.
	Stdin  *os.File // Standard input of the container. Nil means /dev/null.
	Stdout *os.File // Standard output of the container. Nil means /dev/null.
	Stderr *os.File // Standard error of the container. Nil means /dev/null.
}

// Returns a spawner that re-executes the running binary and hands the
// container the runtime's standard streams.
func NewSpawner() *Spawner {
	return &Spawner{
		Path:   selfExe,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Spawns the process described by env and returns its pid once it has
// executed the container program.
//
// Namespaces in the create partition are created by clone(2); namespaces in
// the join partition are joined first, on a dedicated OS thread. A failure
// inside the child is returned as [ErrSetup] after the child has been
// reaped.
func (s *Spawner) Create(env *environment.Environment) (int, error) {
	parent, child, err := newSyncPipe()
	if err != nil {
		return 0, fmt.Errorf("%w: sync pipe: %w", ErrSpawn, err)
	}
	defer parent.Close()

	cmd := &exec.Cmd{
		Path:        s.Path,
		Args:        []string{internal.Name, InitCommand},
		ExtraFiles:  []*os.File{child},
		SysProcAttr: sysProcAttr(env),
	}
	if cmd.Path == "" {
		cmd.Path = selfExe
	}
	if s.Stdin != nil {
		cmd.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		cmd.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}

	err = start(cmd, env.Namespaces().ToJoin())
	child.Close()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	pid := cmd.Process.Pid
	slog.Debug("container process started", "pid", pid, "namespaces", env.Namespaces().Len())

	if err := sendPlan(parent, env); err != nil {
		cmd.Process.Kill()
		s.Wait(pid)
		return 0, fmt.Errorf("%w: %w", ErrSpawn, err)
	}

	msg, err := io.ReadAll(parent)
	if err != nil || len(msg) > 0 {
		code, _ := s.Wait(pid)
		if err != nil {
			return 0, fmt.Errorf("%w: reading sync pipe: %w", ErrSetup, err)
		}
		return 0, fmt.Errorf("%w: %s (exit status %d)", ErrSetup, msg, code)
	}

	cmd.Process.Release()
	return pid, nil
}

// Blocks until the process exits and returns its exit code. A process
// killed by a signal reports 128 plus the signal number.
func (s *Spawner) Wait(pid int) (int, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, unix.WALL, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return -1, fmt.Errorf("%w: pid %d: %w", ErrWait, pid, err)
		}
		break
	}
	return exitCode(ws), nil
}

func exitCode(ws unix.WaitStatus) int {
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}

// Returns the clone attributes for env.
func sysProcAttr(env *environment.Environment) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{
		Cloneflags: env.Namespaces().CloneFlags(),
	}

	uid, gid := env.IDMappings()
	attr.UidMappings = idMap(uid)
	attr.GidMappings = idMap(gid)
	attr.GidMappingsEnableSetgroups = len(env.User().AdditionalGids) > 0

	return attr
}

func idMap(mappings []specs.LinuxIDMapping) []syscall.SysProcIDMap {
	var out []syscall.SysProcIDMap
	for _, m := range mappings {
		out = append(out, syscall.SysProcIDMap{
			ContainerID: int(m.ContainerID),
			HostID:      int(m.HostID),
			Size:        int(m.Size),
		})
	}
	return out
}

// Starts cmd, first joining the given namespaces when there are any.
//
// setns(2) moves only the calling thread, and the child inherits the
// namespaces of the thread that forks it. The join therefore happens on a
// locked thread that is never unlocked, so the runtime discards it once the
// goroutine returns instead of reusing it elsewhere.
func start(cmd *exec.Cmd, joins []namespace.Namespace) error {
	if len(joins) == 0 {
		return cmd.Start()
	}

	errc := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		for _, ns := range joins {
			if err := namespace.Join(ns); err != nil {
				errc <- err
				return
			}
		}
		errc <- cmd.Start()
	}()
	return <-errc
}

// Returns both ends of a close-on-exec socket pair.
func newSyncPipe() (parent, child *os.File, err error) {
	fds, err := unix.Socketpair(unix.AF_LOCAL, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, nil, err
	}
	return os.NewFile(uintptr(fds[0]), "parent syncpipe"), os.NewFile(uintptr(fds[1]), "child syncpipe"), nil
}

// Writes the plan and closes the parent's write side.
func sendPlan(parent *os.File, env *environment.Environment) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if _, err := parent.Write(data); err != nil {
		return err
	}
	return unix.Shutdown(int(parent.Fd()), unix.SHUT_WR)
}
