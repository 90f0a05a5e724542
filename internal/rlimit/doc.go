// Package rlimit models POSIX resource limits applied to a container process.
//
// Resource kinds are named exactly as in config.json (RLIMIT_NOFILE,
// RLIMIT_NPROC, ...). Limits apply to the calling process, so they are set
// inside the container's init before it executes the entry program.
package rlimit
