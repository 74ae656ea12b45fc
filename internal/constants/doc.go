// Package constants resolves the directory and identity constants handed to
// build plugins during a site build.
//
// Resolution composes three passes over an immutable Record: a static merge
// of per-invocation inputs (Merge), filesystem-backed default detection for
// unset path constants (ApplyDefaults), and syntactic normalization of every
// path constant against the build root (NormalizePath). The Resolver runs
// the full composition once at build start and again before every phase, so
// directories created or configuration mutated by plugins mid-build are
// picked up without ever mutating a record a plugin already holds.
package constants
