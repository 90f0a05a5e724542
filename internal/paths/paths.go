package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cruciblehq/cr7/internal"
)

const (

	// Base directory for runtime state when running as root.
	systemRunDir = "/run"

	// Suffix of a container state file.
	stateFileExt = ".json"

	// Default permission mode for the state directory. State files may reveal
	// bundle paths and pids, so only the owner can list them.
	DefaultDirMode os.FileMode = 0700

	// Default permission mode for state files.
	DefaultFileMode os.FileMode = 0600
)

// Path to the directory holding container state files.
//
//	root:    /run/cr7
//	others:  $XDG_RUNTIME_DIR/cr7, or ~/.cache/cr7/run without one
func State() string {
	if os.Geteuid() == 0 {
		return filepath.Join(systemRunDir, internal.Name)
	}
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, internal.Name)
	}
	return filepath.Join(xdg.CacheHome, internal.Name, "run")
}

// Path to the state file of the container with the given id inside dir.
func StateFile(dir, id string) string {
	return filepath.Join(dir, id+stateFileExt)
}

// Returns the container id encoded in a state file name, and whether the
// name is a state file at all.
func IDFromStateFile(name string) (string, bool) {
	base := filepath.Base(name)
	if filepath.Ext(base) != stateFileExt {
		return "", false
	}
	id := base[:len(base)-len(stateFileExt)]
	return id, id != ""
}
