// Package environment assembles everything a container process needs before
// it executes: argv, root filesystem, working directory, hostname,
// namespaces, mounts, environment variables, resource limits and identity.
//
// An [Environment] is built once, either step by step through its setters or
// in a single pass from an OCI configuration with [FromSpec], and is treated
// as immutable afterwards. Every setter validates its input, so an invalid
// combination (a relative working directory, a hostname without a UTS
// namespace, a malformed variable) is rejected before anything touches the
// operating system.
//
// The Environment is also the plan shipped to the container's init process.
// It encodes to JSON, and decoding replays every setter, so a plan that
// could not have been built directly cannot be rebuilt from JSON either.
//
// Example usage:
//
//	env, err := environment.New([]string{"sh"}, "/var/lib/bundle/rootfs")
//	if err != nil {
//	    return err
//	}
//	if err := env.SetNamespace(namespace.New(namespace.UTS, "")); err != nil {
//	    return err
//	}
//	if err := env.SetHostname("box"); err != nil {
//	    return err
//	}
package environment
