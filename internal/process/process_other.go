//go:build !linux

package process

import (
	"os"

	"github.com/cruciblehq/cr7/internal/environment"
)

const (
	InitCommand     = "init"
	ExitSetupFailed = 125
)

// Starts and waits for container processes.
type Spawner struct {
	Path   string
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Returns a spawner.
func NewSpawner() *Spawner {
	return &Spawner{}
}

// Returns [ErrNotSupported].
func (s *Spawner) Create(env *environment.Environment) (int, error) {
	return 0, ErrNotSupported
}

// Returns [ErrNotSupported].
func (s *Spawner) Wait(pid int) (int, error) {
	return -1, ErrNotSupported
}

// Returns [ErrNotSupported].
func Init() error {
	return ErrNotSupported
}
