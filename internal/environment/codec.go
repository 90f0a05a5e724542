package environment

import (
	"encoding/json"

	specs "github.com/opencontainers/runtime-spec/specs-go"

	"github.com/cruciblehq/cr7/internal/mount"
	"github.com/cruciblehq/cr7/internal/namespace"
	"github.com/cruciblehq/cr7/internal/rlimit"
)

// Wire form of an Environment.
type plan struct {
	Argv        []string               `json:"argv"`
	Rootfs      string                 `json:"rootfs"`
	WorkingDir  string                 `json:"cwd"`
	Hostname    string                 `json:"hostname,omitempty"`
	Namespaces  []namespace.Namespace  `json:"namespaces,omitempty"`
	Mounts      []mount.MountPoint     `json:"mounts,omitempty"`
	EnvVars     []EnvVar               `json:"env,omitempty"`
	Rlimits     []rlimit.Rlimit        `json:"rlimits,omitempty"`
	User        User                   `json:"user"`
	UIDMappings []specs.LinuxIDMapping `json:"uidMappings,omitempty"`
	GIDMappings []specs.LinuxIDMapping `json:"gidMappings,omitempty"`
}

// Encodes the environment as JSON.
func (e *Environment) MarshalJSON() ([]byte, error) {
	return json.Marshal(plan{
		Argv:        e.argv,
		Rootfs:      e.rootfs,
		WorkingDir:  e.workingDir,
		Hostname:    e.hostname,
		Namespaces:  e.namespaces.List(),
		Mounts:      e.mounts,
		EnvVars:     e.envVars,
		Rlimits:     e.rlimits,
		User:        e.user,
		UIDMappings: e.uidMappings,
		GIDMappings: e.gidMappings,
	})
}

// Decodes an environment from JSON, validating it exactly as the setters
// would. On error the receiver is left unchanged.
func (e *Environment) UnmarshalJSON(data []byte) error {
	var p plan
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	env, err := New(p.Argv, p.Rootfs)
	if err != nil {
		return err
	}
	if err := env.SetWorkingDir(p.WorkingDir); err != nil {
		return err
	}
	for _, ns := range p.Namespaces {
		if err := env.SetNamespace(ns); err != nil {
			return err
		}
	}
	if p.Hostname != "" {
		if err := env.SetHostname(p.Hostname); err != nil {
			return err
		}
	}
	for _, mp := range p.Mounts {
		if err := env.AddMountPoint(mp); err != nil {
			return err
		}
	}
	for _, v := range p.EnvVars {
		if err := env.AddEnvVar(v.String()); err != nil {
			return err
		}
	}
	for _, rl := range p.Rlimits {
		env.AddRlimit(rl)
	}
	env.SetUser(p.User)
	if err := env.SetIDMappings(p.UIDMappings, p.GIDMappings); err != nil {
		return err
	}

	*e = *env
	return nil
}
