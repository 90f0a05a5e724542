package bundle

import (
	_ "crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

const (
	ConfigFile = "config.json" // Name of the configuration file inside a bundle.
)

// Loaded OCI bundle.
type Bundle struct {
	Path   string        // Absolute path of the bundle directory.
	Rootfs string        // Absolute path of the root filesystem.
	Spec   *specs.Spec   // Decoded configuration.
	Digest digest.Digest // Digest of the configuration bytes.
}

// Loads the bundle in dir.
//
// Missing directories and files are reported as [ErrBundleNotFound],
// [ErrConfigNotFound] and [ErrRootfsNotFound]. A configuration that is not
// valid JSON is [ErrConfigSyntax]; valid JSON with wrong types or without
// process or root sections is [ErrConfigData].
func Load(dir string) (*Bundle, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBundleNotFound, dir, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBundleNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrBundleNotFound, path)
	}

	data, err := os.ReadFile(filepath.Join(path, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigNotFound, err)
	}

	spec, err := decode(data)
	if err != nil {
		return nil, err
	}

	rootfs, err := resolveRootfs(path, spec.Root.Path)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Path:   path,
		Rootfs: rootfs,
		Spec:   spec,
		Digest: digest.FromBytes(data),
	}, nil
}

// Decodes and checks the configuration.
func decode(data []byte) (*specs.Spec, error) {
	var spec specs.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: offset %d: %w", ErrConfigSyntax, syntaxErr.Offset, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrConfigData, err)
	}

	if spec.Process == nil {
		return nil, fmt.Errorf("%w: missing process", ErrConfigData)
	}
	if spec.Root == nil || spec.Root.Path == "" {
		return nil, fmt.Errorf("%w: missing root.path", ErrConfigData)
	}
	return &spec, nil
}

// Returns the absolute root filesystem path and checks it is a directory.
func resolveRootfs(bundle, root string) (string, error) {
	rootfs := root
	if !filepath.IsAbs(root) {
		var err error
		rootfs, err = securejoin.SecureJoin(bundle, root)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrRootfsNotFound, root, err)
		}
	}

	info, err := os.Stat(rootfs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRootfsNotFound, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrRootfsNotFound, rootfs)
	}
	return rootfs, nil
}
