// Package bundle loads OCI bundles from disk.
//
// A bundle is a directory holding a config.json file and a root filesystem.
// [Load] resolves the directory, decodes the configuration into a
// runtime-spec [specs.Spec], locates the root filesystem and records a
// digest of the configuration bytes so later invocations can tell whether
// the configuration changed under a container.
//
// A relative root.path is resolved inside the bundle directory with
// securejoin, so symlinks in the bundle cannot point the root filesystem
// outside of it. Absolute paths are used as given.
package bundle
