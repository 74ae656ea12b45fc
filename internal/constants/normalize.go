package constants

import (
	"path/filepath"
	"strings"
)

// NormalizePath makes a path-bearing constant relative to the build root.
// The transformation is purely syntactic: "." and ".." segments are
// collapsed without touching the filesystem. A path equal to the build root
// becomes ".", a path under the build root loses the root prefix, and any
// other path (including absolute paths outside the root and paths that are
// already relative) is returned cleaned but otherwise unchanged. Applying
// the function twice yields the same result as applying it once.
func NormalizePath(path, buildRoot string, key Key) string {
	if path == "" || !key.IsPath() {
		return path
	}

	cleaned := filepath.Clean(path)
	root := filepath.Clean(buildRoot)

	if cleaned == root {
		return "."
	}

	prefix := root + string(filepath.Separator)
	if strings.HasPrefix(cleaned, prefix) {
		return strings.TrimPrefix(cleaned, prefix)
	}

	return cleaned
}

// normalizeAll runs NormalizePath over every path-bearing constant and
// returns a new record. Non-path constants are untouched.
func normalizeAll(rec Record, buildRoot string) Record {
	out := rec
	for _, k := range pathKeyOrder {
		out = out.withStringValue(k, NormalizePath(out.stringValue(k), buildRoot, k))
	}
	return out
}
