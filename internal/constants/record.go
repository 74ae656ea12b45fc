package constants

import (
	"strconv"

	"git.home.luguber.info/inful/buildconsts/internal/foundation"
)

// Key names a single build constant exposed read-only to plugins.
type Key string

const (
	KeyConfigPath               Key = "CONFIG_PATH"
	KeyPublishDir               Key = "PUBLISH_DIR"
	KeyFunctionsSrc             Key = "FUNCTIONS_SRC"
	KeyPackagePath              Key = "PACKAGE_PATH"
	KeyInternalEdgeFunctionsSrc Key = "INTERNAL_EDGE_FUNCTIONS_SRC"
	KeyInternalFunctionsSrc     Key = "INTERNAL_FUNCTIONS_SRC"
	KeyFunctionsDist            Key = "FUNCTIONS_DIST"
	KeyEdgeFunctionsDist        Key = "EDGE_FUNCTIONS_DIST"
	KeyEdgeFunctionsSrc         Key = "EDGE_FUNCTIONS_SRC"
	KeyIsLocal                  Key = "IS_LOCAL"
	KeyBuildVersion             Key = "NETLIFY_BUILD_VERSION"
	KeySiteID                   Key = "SITE_ID"
	KeyAPIToken                 Key = "NETLIFY_API_TOKEN"
	KeyAPIHost                  Key = "NETLIFY_API_HOST"
	KeyCacheDir                 Key = "CACHE_DIR"
)

// pathKeys marks the constants whose values are paths and therefore subject
// to normalization against the build root. PACKAGE_PATH is a relative
// subdirectory by construction and stays as given.
var pathKeys = map[Key]struct{}{
	KeyConfigPath:               {},
	KeyPublishDir:               {},
	KeyFunctionsSrc:             {},
	KeyInternalEdgeFunctionsSrc: {},
	KeyInternalFunctionsSrc:     {},
	KeyFunctionsDist:            {},
	KeyEdgeFunctionsDist:        {},
	KeyEdgeFunctionsSrc:         {},
	KeyCacheDir:                 {},
}

// pathKeyOrder fixes the iteration order for whole-record passes.
var pathKeyOrder = []Key{
	KeyConfigPath,
	KeyPublishDir,
	KeyFunctionsSrc,
	KeyInternalEdgeFunctionsSrc,
	KeyInternalFunctionsSrc,
	KeyFunctionsDist,
	KeyEdgeFunctionsDist,
	KeyEdgeFunctionsSrc,
	KeyCacheDir,
}

// IsPath returns true if the constant's value is a path.
func (k Key) IsPath() bool {
	_, ok := pathKeys[k]
	return ok
}

// String returns the string representation of the key.
func (k Key) String() string {
	return string(k)
}

// Record is the resolved set of constants handed to plugins for one build
// phase. An empty string means the constant is unset. Records are never
// mutated after construction; every resolution pass returns a new one.
type Record struct {
	ConfigPath               string
	PublishDir               string
	FunctionsSrc             string
	PackagePath              string
	InternalEdgeFunctionsSrc string
	InternalFunctionsSrc     string
	FunctionsDist            string
	EdgeFunctionsDist        string
	EdgeFunctionsSrc         string
	IsLocal                  bool
	BuildVersion             string
	SiteID                   string
	APIToken                 foundation.Option[string]
	APIHost                  foundation.Option[string]
	CacheDir                 string
}

// stringValue returns the value of a string-typed constant, or "" for keys
// that do not hold a plain string (IS_LOCAL, optionals).
func (r Record) stringValue(k Key) string {
	switch k {
	case KeyConfigPath:
		return r.ConfigPath
	case KeyPublishDir:
		return r.PublishDir
	case KeyFunctionsSrc:
		return r.FunctionsSrc
	case KeyPackagePath:
		return r.PackagePath
	case KeyInternalEdgeFunctionsSrc:
		return r.InternalEdgeFunctionsSrc
	case KeyInternalFunctionsSrc:
		return r.InternalFunctionsSrc
	case KeyFunctionsDist:
		return r.FunctionsDist
	case KeyEdgeFunctionsDist:
		return r.EdgeFunctionsDist
	case KeyEdgeFunctionsSrc:
		return r.EdgeFunctionsSrc
	case KeyBuildVersion:
		return r.BuildVersion
	case KeySiteID:
		return r.SiteID
	case KeyCacheDir:
		return r.CacheDir
	default:
		return ""
	}
}

// withStringValue returns a copy of the record with one string-typed
// constant replaced. Keys that do not hold a plain string are left alone.
func (r Record) withStringValue(k Key, v string) Record {
	out := r
	switch k {
	case KeyConfigPath:
		out.ConfigPath = v
	case KeyPublishDir:
		out.PublishDir = v
	case KeyFunctionsSrc:
		out.FunctionsSrc = v
	case KeyPackagePath:
		out.PackagePath = v
	case KeyInternalEdgeFunctionsSrc:
		out.InternalEdgeFunctionsSrc = v
	case KeyInternalFunctionsSrc:
		out.InternalFunctionsSrc = v
	case KeyFunctionsDist:
		out.FunctionsDist = v
	case KeyEdgeFunctionsDist:
		out.EdgeFunctionsDist = v
	case KeyEdgeFunctionsSrc:
		out.EdgeFunctionsSrc = v
	case KeyBuildVersion:
		out.BuildVersion = v
	case KeySiteID:
		out.SiteID = v
	case KeyCacheDir:
		out.CacheDir = v
	}
	return out
}

// Map returns the flat view of the record consumed by the plugin pipeline.
// Unset constants are omitted entirely rather than present-but-empty.
func (r Record) Map() map[Key]any {
	out := make(map[Key]any, 15)
	for _, k := range []Key{
		KeyConfigPath, KeyPublishDir, KeyFunctionsSrc, KeyPackagePath,
		KeyInternalEdgeFunctionsSrc, KeyInternalFunctionsSrc,
		KeyFunctionsDist, KeyEdgeFunctionsDist, KeyEdgeFunctionsSrc,
		KeyBuildVersion, KeySiteID, KeyCacheDir,
	} {
		if v := r.stringValue(k); v != "" {
			out[k] = v
		}
	}
	out[KeyIsLocal] = r.IsLocal
	if r.APIToken.IsSome() {
		out[KeyAPIToken] = r.APIToken.Unwrap()
	}
	if r.APIHost.IsSome() {
		out[KeyAPIHost] = r.APIHost.Unwrap()
	}
	return out
}

// Env returns the record as environment variables for spawned plugin
// processes. Unset constants produce no variable.
func (r Record) Env() map[string]string {
	out := make(map[string]string, 15)
	for k, v := range r.Map() {
		switch val := v.(type) {
		case string:
			out[string(k)] = val
		case bool:
			out[string(k)] = strconv.FormatBool(val)
		}
	}
	return out
}
