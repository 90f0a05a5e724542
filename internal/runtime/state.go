package runtime

import (
	"fmt"
	"regexp"

	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// Lifecycle status of a container.
type Status string

const (
	Creating Status = Status(specs.StateCreating) // State file claimed, environment not yet spawned.
	Created  Status = Status(specs.StateCreated)  // Ready to spawn.
	Running  Status = Status(specs.StateRunning)  // Init process executing.
	Stopped  Status = Status(specs.StateStopped)  // Init process exited.
)

// Legal transitions, keyed by the current status.
var transitions = map[Status][]Status{
	Creating: {Created},
	Created:  {Running},
	Running:  {Stopped},
	Stopped:  {Running},
}

// Returns true if a container may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Returns the status name.
func (s Status) String() string {
	return string(s)
}

// Persisted record of a container.
type State struct {
	Version      string        `json:"ociVersion"`             // Runtime specification version.
	ID           string        `json:"id"`                     // Container id.
	Pid          int           `json:"pid,omitempty"`          // Init pid, kept after the process stops.
	Status       Status        `json:"status"`                 // Lifecycle status.
	Bundle       string        `json:"bundle"`                 // Absolute path of the bundle.
	ConfigDigest digest.Digest `json:"configDigest,omitempty"` // Digest of config.json at the last spawn.
}

var idPattern = regexp.MustCompile(`^[\w+.-]+$`)

// Checks that id is usable as a container id and a state file name.
//
// Ids are made of letters, digits, '_', '+', '-' and '.', and may not be
// "." or "..".
func ValidateID(id string) error {
	if id == "." || id == ".." || !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
