package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/buildconsts/internal/version.Version=v1.4.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Provider supplies build metadata to the constants merger. Injecting it
// keeps the version readable from ldflags in production while tests supply
// a fixed value.
type Provider interface {
	BuildVersion() string
}

// Static is a Provider returning a fixed version string.
type Static struct {
	Version string
}

// BuildVersion returns the fixed version.
func (s Static) BuildVersion() string {
	return s.Version
}

// FromLdflags returns a Provider backed by the package-level variables.
func FromLdflags() Provider {
	return Static{Version: Version}
}
