package environment

import (
	"fmt"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"github.com/cruciblehq/cr7/internal/mount"
	"github.com/cruciblehq/cr7/internal/namespace"
	"github.com/cruciblehq/cr7/internal/rlimit"
)

// Builds the environment described by an OCI configuration.
//
// The configuration is walked once: argv and rootfs, working directory,
// variables, namespaces, hostname, mounts, resource limits, user and id
// mappings. The first invalid entry aborts the build and no environment is
// returned. rootfs is the resolved root filesystem path; spec.Root is not
// consulted.
func FromSpec(spec *specs.Spec, rootfs string) (*Environment, error) {
	if spec == nil || spec.Process == nil {
		return nil, ErrEmptyArgs
	}
	proc := spec.Process

	env, err := New(proc.Args, rootfs)
	if err != nil {
		return nil, err
	}

	if proc.Cwd != "" {
		if err := env.SetWorkingDir(proc.Cwd); err != nil {
			return nil, err
		}
	}

	for _, kv := range proc.Env {
		if err := env.AddEnvVar(kv); err != nil {
			return nil, err
		}
	}

	if spec.Linux != nil {
		for _, ns := range spec.Linux.Namespaces {
			t, err := namespace.ParseType(string(ns.Type))
			if err != nil {
				return nil, err
			}
			if err := env.SetNamespace(namespace.New(t, ns.Path)); err != nil {
				return nil, err
			}
		}
	}

	if spec.Hostname != "" {
		if err := env.SetHostname(spec.Hostname); err != nil {
			return nil, err
		}
	}

	for _, m := range spec.Mounts {
		if err := env.AddMountPoint(mount.New(m.Source, m.Destination, m.Type, m.Options)); err != nil {
			return nil, err
		}
	}

	for _, rl := range proc.Rlimits {
		resource, err := rlimit.ParseResourceType(rl.Type)
		if err != nil {
			return nil, err
		}
		env.AddRlimit(rlimit.New(resource, rl.Soft, rl.Hard))
	}

	env.SetUser(User{
		UID:            proc.User.UID,
		GID:            proc.User.GID,
		AdditionalGids: proc.User.AdditionalGids,
	})

	if spec.Linux != nil {
		if err := env.SetIDMappings(spec.Linux.UIDMappings, spec.Linux.GIDMappings); err != nil {
			return nil, fmt.Errorf("%w: %d uid and %d gid mappings", err, len(spec.Linux.UIDMappings), len(spec.Linux.GIDMappings))
		}
	}

	return env, nil
}
