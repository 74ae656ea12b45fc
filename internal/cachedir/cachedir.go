// Package cachedir resolves the build cache location.
package cachedir

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultCacheDir is where the cache lives when no override is given,
// relative to the package working directory.
const defaultCacheDir = ".netlify/cache"

// Options carries the cache resolution inputs: an optional explicit
// cacheDir override and the working directory to scope the default under
// (the build root joined with the package subdirectory).
type Options struct {
	CacheDir string
	Cwd      string
}

// Resolve returns the cache directory for a build. An explicit override
// wins; a relative override is anchored at the working directory. Without
// an override the default location under the working directory is used.
func Resolve(opts Options) string {
	if opts.CacheDir != "" {
		if filepath.IsAbs(opts.CacheDir) {
			return filepath.Clean(opts.CacheDir)
		}
		return filepath.Join(opts.Cwd, opts.CacheDir)
	}
	return filepath.Join(opts.Cwd, defaultCacheDir)
}

// EnsureExists creates the resolved cache directory if needed.
func EnsureExists(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}
