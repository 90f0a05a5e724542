package runtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"github.com/cruciblehq/cr7/internal/bundle"
	"github.com/cruciblehq/cr7/internal/environment"
)

// Starts container processes and waits for them.
type Spawner interface {
	Create(env *environment.Environment) (pid int, err error)
	Wait(pid int) (exitCode int, err error)
}

// Manages containers whose state lives in one directory.
type Runtime struct {
	store   *Store  // Container state files.
	spawner Spawner // Process starter.
}

// Returns a runtime keeping state in stateDir and starting processes with
// spawner.
func New(stateDir string, spawner Spawner) *Runtime {
	return &Runtime{
		store:   NewStore(stateDir),
		spawner: spawner,
	}
}

// Returns the store holding the runtime's container state.
func (rt *Runtime) Store() *Store {
	return rt.store
}

// Options for [Runtime.Create].
type CreateOption func(*createConfig)

type createConfig struct {
	env     []string         // Extra KEY=VALUE variables appended after the bundle's.
	signals <-chan os.Signal // Signals forwarded to the process while it runs.
}

// Appends variables to the container environment, after those of the
// bundle configuration.
func WithEnv(vars ...string) CreateOption {
	return func(cfg *createConfig) {
		cfg.env = append(cfg.env, vars...)
	}
}

// Forwards every signal received on sigs to the container process until it
// exits. Signals that are not [syscall.Signal] values are ignored.
func WithSignals(sigs <-chan os.Signal) CreateOption {
	return func(cfg *createConfig) {
		cfg.signals = sigs
	}
}

// Creates a container from the bundle in dir and runs it to completion.
//
// The bundle is loaded and the environment built before anything is
// written, so configuration errors leave no trace. The state file is then
// claimed exclusively; [ErrContainerExists] is returned if the id is taken.
// If the process cannot be spawned the state file is removed again.
// Otherwise the container ends in [Stopped] with its pid recorded, and the
// exit code is available from [Container.ExitCode].
func (rt *Runtime) Create(id, dir string, opts ...CreateOption) (*Container, error) {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if rt.store.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrContainerExists, id)
	}

	b, env, err := loadEnvironment(dir, cfg.env)
	if err != nil {
		return nil, err
	}

	c := &Container{
		state: State{
			Version:      specs.Version,
			ID:           id,
			Status:       Creating,
			Bundle:       b.Path,
			ConfigDigest: b.Digest,
		},
		store:    rt.store,
		exitCode: -1,
	}
	if err := rt.store.Create(&c.state); err != nil {
		return nil, err
	}
	slog.Debug("container state claimed", "id", id, "dir", rt.store.Dir(), "bundle", b.Path)

	if err := c.transition(Created, nil); err != nil {
		rt.store.Remove(id)
		return nil, err
	}

	pid, err := rt.spawner.Create(env)
	if err != nil {
		rt.store.Remove(id)
		return nil, err
	}

	if err := rt.wait(c, pid, b, cfg.signals); err != nil {
		return c, err
	}
	return c, nil
}

// Runs a stopped container again.
//
// The bundle is reloaded from disk. A configuration that changed since the
// container was last spawned is used as is, with a warning.
func (rt *Runtime) Start(id string, opts ...CreateOption) (*Container, error) {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := rt.Load(id)
	if err != nil {
		return nil, err
	}
	if c.Status() != Stopped {
		return nil, fmt.Errorf("%w: %s: cannot start a %s container", ErrInvalidTransition, id, c.Status())
	}

	b, env, err := loadEnvironment(c.Bundle(), cfg.env)
	if err != nil {
		return nil, err
	}
	if c.ConfigDigest() != "" && b.Digest != c.ConfigDigest() {
		slog.Warn("bundle config changed since the container was created", "id", id, "was", c.ConfigDigest(), "now", b.Digest)
	}

	pid, err := rt.spawner.Create(env)
	if err != nil {
		return nil, err
	}

	if err := rt.wait(c, pid, b, cfg.signals); err != nil {
		return c, err
	}
	return c, nil
}

// Records pid as running, waits for it and records the stop. Signals
// arriving on sigs meanwhile are passed on to pid.
func (rt *Runtime) wait(c *Container, pid int, b *bundle.Bundle, sigs <-chan os.Signal) error {
	err := c.transition(Running, func(st *State) {
		st.Pid = pid
		st.ConfigDigest = b.Digest
	})
	if err != nil {
		return err
	}
	slog.Info("container running", "id", c.ID(), "pid", pid)

	stop := forwardSignals(c.ID(), pid, sigs)
	code, waitErr := rt.spawner.Wait(pid)
	stop()

	if !rt.store.Exists(c.ID()) {
		slog.Debug("container deleted while running", "id", c.ID())
		c.exitCode = code
		return waitErr
	}
	if err := c.transition(Stopped, nil); err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}

	c.exitCode = code
	slog.Info("container stopped", "id", c.ID(), "pid", pid, "exit", code)
	return nil
}

// Returns the container with the given id, or [ErrNotFound].
func (rt *Runtime) Load(id string) (*Container, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	st, err := rt.store.Load(id)
	if err != nil {
		return nil, err
	}
	return &Container{state: *st, store: rt.store, exitCode: -1}, nil
}

// Returns the state of a container as indented JSON.
func (rt *Runtime) State(id string) (string, error) {
	c, err := rt.Load(id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(c.State(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Returns every container, sorted by id.
func (rt *Runtime) List() ([]*Container, error) {
	states, err := rt.store.List()
	if err != nil {
		return nil, err
	}
	containers := make([]*Container, 0, len(states))
	for _, st := range states {
		containers = append(containers, &Container{state: *st, store: rt.store, exitCode: -1})
	}
	return containers, nil
}

// Sends sig to the init process of a running container.
//
// Returns [ErrNotRunning] unless the container is [Running].
func (rt *Runtime) Kill(id string, sig syscall.Signal) error {
	c, err := rt.Load(id)
	if err != nil {
		return err
	}
	if c.Status() != Running || c.Pid() == 0 {
		return fmt.Errorf("%w: %s is %s", ErrNotRunning, id, c.Status())
	}

	if err := signalProcess(c.Pid(), sig); err != nil {
		return fmt.Errorf("signal %s to %s (pid %d): %w", sig, id, c.Pid(), err)
	}
	slog.Debug("signal sent", "id", id, "pid", c.Pid(), "signal", sig)
	return nil
}

// Removes a container's state.
//
// A running container whose process is still alive is refused with
// [ErrRunning], unless force is set, in which case the process is killed
// first.
func (rt *Runtime) Delete(id string, force bool) error {
	c, err := rt.Load(id)
	if err != nil {
		return err
	}

	if c.Status() == Running && c.Pid() != 0 && processAlive(c.Pid()) {
		if !force {
			return fmt.Errorf("%w: %s (pid %d)", ErrRunning, id, c.Pid())
		}
		if err := signalProcess(c.Pid(), syscall.SIGKILL); err != nil {
			return fmt.Errorf("kill %s (pid %d): %w", id, c.Pid(), err)
		}
		slog.Debug("container killed", "id", id, "pid", c.Pid())
	}

	if err := rt.store.Remove(id); err != nil {
		return err
	}
	slog.Debug("container deleted", "id", id)
	return nil
}

// Relays signals from sigs to pid on a separate goroutine. The returned
// function ends the relay and returns once it has stopped.
func forwardSignals(id string, pid int, sigs <-chan os.Signal) func() {
	if sigs == nil {
		return func() {}
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			case s := <-sigs:
				sig, ok := s.(syscall.Signal)
				if !ok {
					continue
				}
				if err := signalProcess(pid, sig); err != nil {
					slog.Warn("cannot forward signal", "id", id, "pid", pid, "signal", sig, "error", err)
					continue
				}
				slog.Debug("signal forwarded", "id", id, "pid", pid, "signal", sig)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}

// Loads the bundle in dir and builds its environment with extra variables
// appended.
func loadEnvironment(dir string, extra []string) (*bundle.Bundle, *environment.Environment, error) {
	b, err := bundle.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	env, err := environment.FromSpec(b.Spec, b.Rootfs)
	if err != nil {
		return nil, nil, err
	}
	for _, kv := range extra {
		if err := env.AddEnvVar(kv); err != nil {
			return nil, nil, err
		}
	}
	slog.Debug("environment built", "bundle", b.Path, "argv", env.Argv(), "env", env.Environ())
	return b, env, nil
}
