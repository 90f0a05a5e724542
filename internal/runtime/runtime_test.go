package runtime

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"syscall"
	"testing"

	"github.com/cruciblehq/cr7/internal/bundle"
	"github.com/cruciblehq/cr7/internal/environment"
	"github.com/cruciblehq/cr7/internal/namespace"
)

// Records spawned environments and the status persisted at spawn time.
type fakeSpawner struct {
	store       *Store
	pid         int
	exitCode    int
	createErr   error
	waitErr     error
	envs        []*environment.Environment
	spawnStatus []Status
	waitStatus  []Status
}

func (f *fakeSpawner) Create(env *environment.Environment) (int, error) {
	f.envs = append(f.envs, env)
	if st, err := f.store.Load(f.lastID()); err == nil {
		f.spawnStatus = append(f.spawnStatus, st.Status)
	}
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.pid, nil
}

func (f *fakeSpawner) Wait(pid int) (int, error) {
	if st, err := f.store.Load(f.lastID()); err == nil {
		f.waitStatus = append(f.waitStatus, st.Status)
	}
	return f.exitCode, f.waitErr
}

// Every test uses a single container id.
func (f *fakeSpawner) lastID() string { return "web" }

const testConfig = `{
	"ociVersion": "1.0.2",
	"process": {"args": ["true"], "cwd": "/", "env": ["PATH=/bin"]},
	"root": {"path": "rootfs"},
	"hostname": "web",
	"linux": {"namespaces": [{"type": "pid"}, {"type": "uts"}, {"type": "mount"}]}
}`

func writeBundle(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "rootfs"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, bundle.ConfigFile), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestRuntime(t *testing.T) (*Runtime, *fakeSpawner) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "state"))
	spawner := &fakeSpawner{store: store, pid: 4242}
	return &Runtime{store: store, spawner: spawner}, spawner
}

func TestCreate(t *testing.T) {
	rt, spawner := newTestRuntime(t)
	dir := writeBundle(t, testConfig)

	c, err := rt.Create("web", dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if c.Status() != Stopped {
		t.Errorf("Status() = %s, want stopped", c.Status())
	}
	if c.Pid() != 4242 {
		t.Errorf("Pid() = %d, want 4242", c.Pid())
	}
	if c.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", c.ExitCode())
	}
	if c.Bundle() != dir {
		t.Errorf("Bundle() = %q, want %q", c.Bundle(), dir)
	}
	if c.ConfigDigest() == "" {
		t.Error("ConfigDigest() is empty")
	}

	if !reflect.DeepEqual(spawner.spawnStatus, []Status{Created}) {
		t.Errorf("status at spawn = %v, want [created]", spawner.spawnStatus)
	}
	if !reflect.DeepEqual(spawner.waitStatus, []Status{Running}) {
		t.Errorf("status at wait = %v, want [running]", spawner.waitStatus)
	}

	loaded, err := rt.Load("web")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded.State(), c.State()) {
		t.Errorf("persisted %+v, want %+v", loaded.State(), c.State())
	}

	env := spawner.envs[0]
	if env.Rootfs() != filepath.Join(dir, "rootfs") {
		t.Errorf("Rootfs() = %q", env.Rootfs())
	}
	if h, _ := env.Hostname(); h != "web" {
		t.Errorf("Hostname() = %q", h)
	}
}

func TestCreateExitCode(t *testing.T) {
	rt, spawner := newTestRuntime(t)
	spawner.exitCode = 137

	c, err := rt.Create("web", writeBundle(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if c.ExitCode() != 137 {
		t.Fatalf("ExitCode() = %d, want 137", c.ExitCode())
	}
}

func TestCreateTwice(t *testing.T) {
	rt, _ := newTestRuntime(t)
	dir := writeBundle(t, testConfig)

	if _, err := rt.Create("web", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Create("web", dir); !errors.Is(err, ErrContainerExists) {
		t.Fatalf("err = %v, want ErrContainerExists", err)
	}
}

func TestCreateWithEnv(t *testing.T) {
	rt, spawner := newTestRuntime(t)

	if _, err := rt.Create("web", writeBundle(t, testConfig), WithEnv("A=1", "B=2")); err != nil {
		t.Fatal(err)
	}
	want := []string{"PATH=/bin", "A=1", "B=2"}
	if got := spawner.envs[0].Environ(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Environ() = %v, want %v", got, want)
	}
}

func TestCreateFailsBeforeSpawn(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		config string
		noRoot bool
		env    []string
		want   error
	}{
		{
			name:   "invalid id",
			id:     "../web",
			config: testConfig,
			want:   ErrInvalidID,
		},
		{
			name:   "missing rootfs",
			id:     "web",
			config: testConfig,
			noRoot: true,
			want:   bundle.ErrRootfsNotFound,
		},
		{
			name:   "duplicate pid namespace",
			id:     "web",
			config: `{"process": {"args": ["true"]}, "root": {"path": "rootfs"}, "linux": {"namespaces": [{"type": "pid"}, {"type": "pid"}]}}`,
			want:   namespace.ErrDuplicateNamespace,
		},
		{
			name:   "malformed extra env",
			id:     "web",
			config: `{"process": {"args": ["true"]}, "root": {"path": "rootfs"}}`,
			env:    []string{"=bad"},
			want:   environment.ErrMalformedEnvVar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, spawner := newTestRuntime(t)
			dir := writeBundle(t, tt.config)
			if tt.noRoot {
				if err := os.Remove(filepath.Join(dir, "rootfs")); err != nil {
					t.Fatal(err)
				}
			}

			_, err := rt.Create(tt.id, dir, WithEnv(tt.env...))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(spawner.envs) != 0 {
				t.Fatal("process spawned despite error")
			}
			if rt.store.Exists(tt.id) {
				t.Fatal("state file left behind")
			}
		})
	}
}

func TestCreateSpawnFailureRemovesState(t *testing.T) {
	rt, spawner := newTestRuntime(t)
	spawner.createErr = errors.New("clone failed")

	_, err := rt.Create("web", writeBundle(t, testConfig))
	if err == nil {
		t.Fatal("expected error")
	}
	if rt.store.Exists("web") {
		t.Fatal("state file left behind after spawn failure")
	}
	if _, err := rt.Load("web"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load err = %v, want ErrNotFound", err)
	}
}

func TestStart(t *testing.T) {
	rt, spawner := newTestRuntime(t)
	dir := writeBundle(t, testConfig)

	if _, err := rt.Create("web", dir); err != nil {
		t.Fatal(err)
	}
	spawner.pid = 5151

	c, err := rt.Start("web")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.Status() != Stopped || c.Pid() != 5151 {
		t.Fatalf("after Start: status %s pid %d", c.Status(), c.Pid())
	}
	if len(spawner.envs) != 2 {
		t.Fatalf("spawned %d times, want 2", len(spawner.envs))
	}
	if !reflect.DeepEqual(spawner.waitStatus, []Status{Running, Running}) {
		t.Fatalf("status at wait = %v", spawner.waitStatus)
	}
}

func TestStartUpdatesDigest(t *testing.T) {
	rt, _ := newTestRuntime(t)
	dir := writeBundle(t, testConfig)

	created, err := rt.Create("web", dir)
	if err != nil {
		t.Fatal(err)
	}

	changed := `{"process": {"args": ["false"]}, "root": {"path": "rootfs"}}`
	if err := os.WriteFile(filepath.Join(dir, bundle.ConfigFile), []byte(changed), 0644); err != nil {
		t.Fatal(err)
	}

	started, err := rt.Start("web")
	if err != nil {
		t.Fatal(err)
	}
	if started.ConfigDigest() == created.ConfigDigest() {
		t.Fatal("digest not updated after config change")
	}
}

func TestStartRequiresStopped(t *testing.T) {
	for _, status := range []Status{Creating, Created, Running} {
		t.Run(string(status), func(t *testing.T) {
			rt, spawner := newTestRuntime(t)
			st := testState("web")
			st.Status = status
			st.Bundle = writeBundle(t, testConfig)
			if err := rt.store.Save(st); err != nil {
				t.Fatal(err)
			}

			if _, err := rt.Start("web"); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if len(spawner.envs) != 0 {
				t.Fatal("process spawned")
			}
		})
	}
}

func TestStartMissing(t *testing.T) {
	rt, _ := newTestRuntime(t)
	if _, err := rt.Start("web"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestState(t *testing.T) {
	rt, _ := newTestRuntime(t)
	if _, err := rt.Create("web", writeBundle(t, testConfig)); err != nil {
		t.Fatal(err)
	}

	out, err := rt.State("web")
	if err != nil {
		t.Fatal(err)
	}
	var st State
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("State() is not JSON: %v\n%s", err, out)
	}
	if st.ID != "web" || st.Status != Stopped || st.Pid != 4242 {
		t.Fatalf("State() = %+v", st)
	}
}

func TestList(t *testing.T) {
	rt, _ := newTestRuntime(t)
	for _, id := range []string{"b", "a"} {
		if err := rt.store.Save(testState(id)); err != nil {
			t.Fatal(err)
		}
	}

	cs, err := rt.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 || cs[0].ID() != "a" || cs[1].ID() != "b" {
		t.Fatalf("List() = %v", cs)
	}
}

func TestKillNotRunning(t *testing.T) {
	rt, _ := newTestRuntime(t)
	if _, err := rt.Create("web", writeBundle(t, testConfig)); err != nil {
		t.Fatal(err)
	}
	if err := rt.Kill("web", syscall.SIGTERM); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("err = %v, want ErrNotRunning", err)
	}
}

func TestKillRunning(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}

	rt, _ := newTestRuntime(t)
	st := testState("web")
	st.Pid = cmd.Process.Pid
	if err := rt.store.Save(st); err != nil {
		t.Fatal(err)
	}

	if err := rt.Kill("web", syscall.SIGTERM); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Wait err = %v, want exit error", err)
	}
	if ws := exitErr.Sys().(syscall.WaitStatus); !ws.Signaled() || ws.Signal() != syscall.SIGTERM {
		t.Fatalf("process ended with %v, want SIGTERM", ws)
	}
}

func TestDelete(t *testing.T) {
	rt, _ := newTestRuntime(t)
	if _, err := rt.Create("web", writeBundle(t, testConfig)); err != nil {
		t.Fatal(err)
	}
	if err := rt.Delete("web", false); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := rt.Load("web"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load err = %v, want ErrNotFound", err)
	}
	if err := rt.Delete("web", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRunningDeadProcess(t *testing.T) {
	rt, _ := newTestRuntime(t)
	st := testState("web")
	st.Pid = 1 << 30
	if err := rt.store.Save(st); err != nil {
		t.Fatal(err)
	}
	if err := rt.Delete("web", false); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDeleteRunningAliveProcess(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}

	rt, _ := newTestRuntime(t)
	st := testState("web")
	st.Pid = cmd.Process.Pid
	if err := rt.store.Save(st); err != nil {
		t.Fatal(err)
	}

	if err := rt.Delete("web", false); !errors.Is(err, ErrRunning) {
		cmd.Process.Kill()
		cmd.Wait()
		t.Fatalf("err = %v, want ErrRunning", err)
	}
	if err := rt.Delete("web", true); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		t.Fatalf("forced Delete: %v", err)
	}
	cmd.Wait()
	if rt.store.Exists("web") {
		t.Fatal("state still exists after forced delete")
	}
}

// Runs a host sleep process in place of the container.
type sleepSpawner struct {
	cmd *exec.Cmd
}

func (s *sleepSpawner) Create(env *environment.Environment) (int, error) {
	s.cmd = exec.Command("sleep", "30")
	if err := s.cmd.Start(); err != nil {
		return 0, err
	}
	return s.cmd.Process.Pid, nil
}

func (s *sleepSpawner) Wait(pid int) (int, error) {
	err := s.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ws := exitErr.Sys().(syscall.WaitStatus)
		if ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return ws.ExitStatus(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

func TestCreateForwardsSignals(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	store := NewStore(filepath.Join(t.TempDir(), "state"))
	rt := &Runtime{store: store, spawner: &sleepSpawner{}}

	sigs := make(chan os.Signal, 1)
	sigs <- syscall.SIGTERM

	c, err := rt.Create("web", writeBundle(t, testConfig), WithSignals(sigs))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := 128 + int(syscall.SIGTERM); c.ExitCode() != want {
		t.Fatalf("ExitCode() = %d, want %d", c.ExitCode(), want)
	}
	if c.Status() != Stopped {
		t.Fatalf("Status() = %s, want stopped", c.Status())
	}
}
