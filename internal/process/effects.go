package process

import (
	"fmt"
	"log/slog"

	"github.com/cruciblehq/cr7/internal/environment"
	"github.com/cruciblehq/cr7/internal/namespace"
)

const (
	homeDir = "/" // HOME when the user has no passwd entry.
)

// Named step applied to the container process before it executes.
type Effect struct {
	Name  string               // Short name used in error messages.
	Apply func(Syscalls) error // Performs the step.
}

// Returns the steps that turn a freshly spawned process into the container
// described by env, in the order they must run. The last step executes the
// program and only returns on failure.
func Plan(env *environment.Environment) []Effect {
	effects := []Effect{
		{Name: "chroot", Apply: func(sys Syscalls) error { return enterRoot(sys, env) }},
		{Name: "env", Apply: func(sys Syscalls) error { return setEnv(sys, env) }},
		{Name: "mount", Apply: func(sys Syscalls) error { return mountAll(sys, env) }},
		{Name: "chdir", Apply: func(sys Syscalls) error { return sys.Chdir(env.WorkingDir()) }},
	}

	if hostname, ok := env.Hostname(); ok {
		effects = append(effects, Effect{
			Name:  "hostname",
			Apply: func(sys Syscalls) error { return sys.Sethostname(hostname) },
		})
	}

	return append(effects,
		Effect{Name: "rlimit", Apply: func(sys Syscalls) error { return setRlimits(sys, env) }},
		Effect{Name: "user", Apply: func(sys Syscalls) error { return setUser(sys, env) }},
		Effect{Name: "exec", Apply: func(sys Syscalls) error { return execute(sys, env) }},
	)
}

// Runs effects in order and stops at the first failure.
func Apply(sys Syscalls, effects []Effect) error {
	for _, e := range effects {
		slog.Debug("applying effect", "effect", e.Name)
		if err := e.Apply(sys); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
	}
	return nil
}

func enterRoot(sys Syscalls, env *environment.Environment) error {
	if env.Namespaces().Creates(namespace.Mount) {
		if err := sys.MakeRootPrivate(); err != nil {
			return err
		}
	}
	if err := sys.Chroot(env.Rootfs()); err != nil {
		return err
	}
	return sys.Chdir("/")
}

// Replaces the variables of the process with the configured ones. HOME is
// filled in from the container's passwd database when it is not configured.
func setEnv(sys Syscalls, env *environment.Environment) error {
	sys.Clearenv()
	for _, v := range env.EnvVars() {
		if err := sys.Setenv(v.Key, v.Value); err != nil {
			return err
		}
	}

	if _, ok := sys.Getenv("HOME"); ok {
		return nil
	}
	home, err := sys.LookupHome(env.User().UID)
	if err != nil || home == "" {
		home = homeDir
	}
	return sys.Setenv("HOME", home)
}

func mountAll(sys Syscalls, env *environment.Environment) error {
	for _, mp := range env.Mounts() {
		if err := sys.Mount(mp); err != nil {
			return err
		}
	}
	return nil
}

func setRlimits(sys Syscalls, env *environment.Environment) error {
	for _, rl := range env.Rlimits() {
		if err := sys.Setrlimit(rl); err != nil {
			return err
		}
	}
	return nil
}

// Drops privileges: supplementary groups, then gid, then uid. Changing the
// uid first would forfeit the right to change the rest.
//
// An empty group list cannot be set from inside a user namespace whose
// setgroups is denied, so it is skipped there.
func setUser(sys Syscalls, env *environment.Environment) error {
	u := env.User()

	inUserNS := env.Namespaces().Contains(namespace.User) || sys.InUserNamespace()
	if len(u.AdditionalGids) > 0 || !inUserNS {
		if err := sys.Setgroups(u.AdditionalGids); err != nil {
			return fmt.Errorf("setgroups %v: %w", u.AdditionalGids, err)
		}
	}
	if err := sys.Setgid(u.GID); err != nil {
		return fmt.Errorf("setgid %d: %w", u.GID, err)
	}
	if err := sys.Setuid(u.UID); err != nil {
		return fmt.Errorf("setuid %d: %w", u.UID, err)
	}
	return nil
}

// Executes argv, resolving the program on the container's PATH.
func execute(sys Syscalls, env *environment.Environment) error {
	argv := env.Argv()

	path, ok := sys.Getenv("PATH")
	if !ok {
		path = DefaultPath
	}
	prog, err := sys.LookPath(argv[0], path)
	if err != nil {
		return err
	}
	if err := sys.Exec(prog, argv, sys.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", prog, err)
	}
	return nil
}
