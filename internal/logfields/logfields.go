package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyConstant   = "constant"
	KeyPath       = "path"
	KeyBuildRoot  = "build_root"
	KeyMode       = "mode"
	KeyPhase      = "phase"
	KeyResolveID  = "resolve_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Constant(name string) slog.Attr    { return slog.String(KeyConstant, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func BuildRoot(dir string) slog.Attr    { return slog.String(KeyBuildRoot, dir) }
func Mode(m string) slog.Attr           { return slog.String(KeyMode, m) }
func Phase(name string) slog.Attr       { return slog.String(KeyPhase, name) }
func ResolveID(id string) slog.Attr     { return slog.String(KeyResolveID, id) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
