package rlimit

import "fmt"

// Kind of resource a limit applies to.
type ResourceType int

const (
	AS ResourceType = iota + 1
	Core
	CPU
	Data
	FSize
	Locks
	MemLock
	MsgQueue
	Nice
	NoFile
	NProc
	RSS
	RTPrio
	RTTime
	SigPending
	Stack
)

var resourceNames = map[ResourceType]string{
	AS:         "RLIMIT_AS",
	Core:       "RLIMIT_CORE",
	CPU:        "RLIMIT_CPU",
	Data:       "RLIMIT_DATA",
	FSize:      "RLIMIT_FSIZE",
	Locks:      "RLIMIT_LOCKS",
	MemLock:    "RLIMIT_MEMLOCK",
	MsgQueue:   "RLIMIT_MSGQUEUE",
	Nice:       "RLIMIT_NICE",
	NoFile:     "RLIMIT_NOFILE",
	NProc:      "RLIMIT_NPROC",
	RSS:        "RLIMIT_RSS",
	RTPrio:     "RLIMIT_RTPRIO",
	RTTime:     "RLIMIT_RTTIME",
	SigPending: "RLIMIT_SIGPENDING",
	Stack:      "RLIMIT_STACK",
}

// Resolves a name such as "RLIMIT_NOFILE" to its [ResourceType].
//
// Names are case sensitive. Returns [ErrUnknownResource] otherwise.
func ParseResourceType(name string) (ResourceType, error) {
	for r, n := range resourceNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// Returns the RLIMIT_* name of the resource.
func (r ResourceType) String() string {
	if n, ok := resourceNames[r]; ok {
		return n
	}
	return fmt.Sprintf("ResourceType(%d)", int(r))
}

// Encodes the resource by its RLIMIT_* name.
func (r ResourceType) MarshalText() ([]byte, error) {
	if _, ok := resourceNames[r]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownResource, int(r))
	}
	return []byte(r.String()), nil
}

// Decodes a resource from its RLIMIT_* name.
func (r *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Soft and hard limit for one resource.
type Rlimit struct {
	Resource ResourceType `json:"type"` // Resource being limited.
	Soft     uint64       `json:"soft"` // Value enforced by the kernel.
	Hard     uint64       `json:"hard"` // Ceiling for the soft limit.
}

// Returns a limit on resource.
func New(resource ResourceType, soft, hard uint64) Rlimit {
	return Rlimit{Resource: resource, Soft: soft, Hard: hard}
}
