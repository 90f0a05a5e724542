// Package process starts container processes and prepares them to run.
//
// Go cannot run arbitrary code between clone(2) and execve(2), so a
// container process starts as a copy of the runtime itself. [Spawner.Create]
// re-executes the running binary with the hidden "init" command inside the
// namespaces the environment asks for, then streams the serialized
// [environment.Environment] to it over a socket pair (the sync pipe). The
// child, entering through [Init], decodes that plan, applies it and
// executes the container's program.
//
// The sync pipe is close-on-exec on both ends. When the child executes the
// program its end closes and the parent reads end of file, which is the
// success signal. Anything the parent reads before that is the child's
// setup error, reported as [ErrSetup].
//
// Applying the plan is expressed as an ordered list of named effects
// ([Plan]) over a [Syscalls] layer, so the ordering can be checked without
// touching the host:
//
//  1. chroot into the root filesystem
//  2. replace the environment variables
//  3. mount every mount point
//  4. change to the working directory
//  5. set the hostname
//  6. apply resource limits
//  7. drop to the configured groups, gid and uid
//  8. execute the program
package process
