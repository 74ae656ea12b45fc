package constants

import (
	"path/filepath"

	"git.home.luguber.info/inful/buildconsts/internal/cachedir"
	"git.home.luguber.info/inful/buildconsts/internal/foundation"
)

// ModeBuildbot is the reserved execution mode for builds running inside the
// hosted build infrastructure. Any other mode string means a local build.
const ModeBuildbot = "buildbot"

// Framework-generated function sources live in fixed subdirectories of the
// package root.
const (
	internalFunctionsSrc     = ".netlify/functions-internal"
	internalEdgeFunctionsSrc = ".netlify/edge-functions"
)

// MergeInput carries the statically known inputs to the merger, supplied
// once per build invocation.
type MergeInput struct {
	ConfigPath           string
	BuildRoot            string
	PackagePath          string
	FunctionsDistDir     string
	EdgeFunctionsDistDir string
	CacheDir             string // optional override
	SiteID               string
	APIHost              foundation.Option[string]
	APIToken             foundation.Option[string]
	Mode                 string
	BuildVersion         string
}

// Merge combines the static inputs into a base record. The result is not
// yet defaulted or normalized; Resolver composes those passes on top.
// Deterministic for identical inputs: no filesystem access happens here.
func Merge(in MergeInput) Record {
	isLocal := in.Mode != ModeBuildbot
	pkgCwd := filepath.Join(in.BuildRoot, in.PackagePath)

	return Record{
		ConfigPath:               in.ConfigPath,
		PackagePath:              in.PackagePath,
		InternalFunctionsSrc:     filepath.Join(pkgCwd, internalFunctionsSrc),
		InternalEdgeFunctionsSrc: filepath.Join(pkgCwd, internalEdgeFunctionsSrc),
		FunctionsDist:            distDir(in.FunctionsDistDir, in.PackagePath, isLocal),
		EdgeFunctionsDist:        distDir(in.EdgeFunctionsDistDir, in.PackagePath, isLocal),
		CacheDir:                 cachedir.Resolve(cachedir.Options{CacheDir: in.CacheDir, Cwd: pkgCwd}),
		IsLocal:                  isLocal,
		BuildVersion:             in.BuildVersion,
		SiteID:                   in.SiteID,
		APIToken:                 in.APIToken,
		APIHost:                  in.APIHost,
	}
}

// distDir joins a distribution directory with the package subdirectory for
// local builds. Remote builds receive pre-resolved absolute paths from the
// packaging step and those must pass through untouched.
func distDir(dir, packagePath string, isLocal bool) string {
	if dir == "" {
		return ""
	}
	if !isLocal {
		return dir
	}
	return filepath.Join(packagePath, dir)
}
