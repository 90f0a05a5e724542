package runtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/moby/sys/atomicwriter"

	"github.com/cruciblehq/cr7/internal/paths"
)

// Directory of container state files, one <id>.json per container.
type Store struct {
	dir string
}

// Returns a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Returns true if a state file exists for id.
func (s *Store) Exists(id string) bool {
	_, err := os.Lstat(paths.StateFile(s.dir, id))
	return err == nil
}

// Writes the state of a new container.
//
// The file is written under a temporary name and hard linked into place,
// which fails if the name is taken. Of two concurrent creates for the same
// id exactly one succeeds; the other gets [ErrContainerExists].
func (s *Store) Create(st *State) error {
	tmp, err := s.writeTemp(st)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, paths.StateFile(s.dir, st.ID)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrContainerExists, st.ID)
		}
		return err
	}
	return nil
}

// Replaces the state of a container. Readers see either the old or the new
// state, never a partial write.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(s.dir, paths.DefaultDirMode); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return atomicwriter.WriteFile(paths.StateFile(s.dir, st.ID), data, paths.DefaultFileMode)
}

// Reads the state of a container.
//
// Returns [ErrNotFound] when there is no state file and [ErrCorruptState]
// when it cannot be decoded.
func (s *Store) Load(id string) (*State, error) {
	data, err := os.ReadFile(paths.StateFile(s.dir, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptState, id, err)
	}
	if st.ID != id {
		return nil, fmt.Errorf("%w: %s: file holds id %q", ErrCorruptState, id, st.ID)
	}
	return &st, nil
}

// Deletes the state file of a container. Returns [ErrNotFound] if there is
// none.
func (s *Store) Remove(id string) error {
	if err := os.Remove(paths.StateFile(s.dir, id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// Returns the state of every container, sorted by id. Unreadable state
// files are logged and skipped.
func (s *Store) List() ([]*State, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var states []*State
	for _, entry := range entries {
		id, ok := paths.IDFromStateFile(entry.Name())
		if !ok || entry.IsDir() {
			continue
		}
		st, err := s.Load(id)
		if err != nil {
			slog.Warn("skipping container state", "id", id, "error", err)
			continue
		}
		states = append(states, st)
	}

	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })
	return states, nil
}

// Writes st to a synced temporary file in the store directory and returns
// its path. Used by [Store.Create], which links the file into place.
func (s *Store) writeTemp(st *State) (string, error) {
	if err := os.MkdirAll(s.dir, paths.DefaultDirMode); err != nil {
		return "", err
	}

	data, err := json.Marshal(st)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.dir, "."+st.ID+"-*.tmp")
	if err != nil {
		return "", err
	}
	if err := f.Chmod(paths.DefaultFileMode); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
