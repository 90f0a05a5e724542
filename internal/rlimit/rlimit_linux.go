package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var resourceNumbers = map[ResourceType]int{
	AS:         unix.RLIMIT_AS,
	Core:       unix.RLIMIT_CORE,
	CPU:        unix.RLIMIT_CPU,
	Data:       unix.RLIMIT_DATA,
	FSize:      unix.RLIMIT_FSIZE,
	Locks:      unix.RLIMIT_LOCKS,
	MemLock:    unix.RLIMIT_MEMLOCK,
	MsgQueue:   unix.RLIMIT_MSGQUEUE,
	Nice:       unix.RLIMIT_NICE,
	NoFile:     unix.RLIMIT_NOFILE,
	NProc:      unix.RLIMIT_NPROC,
	RSS:        unix.RLIMIT_RSS,
	RTPrio:     unix.RLIMIT_RTPRIO,
	RTTime:     unix.RLIMIT_RTTIME,
	SigPending: unix.RLIMIT_SIGPENDING,
	Stack:      unix.RLIMIT_STACK,
}

// Applies the limit to the calling process.
//
// Kernel rejections (a soft limit above the hard limit, raising the hard
// limit without privilege) are wrapped in [ErrSetRlimit].
func (r Rlimit) Set() error {
	resource, ok := resourceNumbers[r.Resource]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownResource, int(r.Resource))
	}

	lim := unix.Rlimit{Cur: r.Soft, Max: r.Hard}
	if err := unix.Setrlimit(resource, &lim); err != nil {
		return fmt.Errorf("%w: %s soft %d hard %d: %w", ErrSetRlimit, r.Resource, r.Soft, r.Hard, err)
	}
	return nil
}
