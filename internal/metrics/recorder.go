package metrics

import "time"

// ResolveKind labels which resolution path produced a record.
type ResolveKind string

const (
	ResolveInitial ResolveKind = "initial"
	ResolveRefresh ResolveKind = "refresh"
)

// Recorder defines observability hooks for constants resolution.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection).
type Recorder interface {
	ObserveResolveDuration(d time.Duration)
	IncResolve(kind ResolveKind)
	IncDefaultApplied(constant string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(time.Duration) {}
func (NoopRecorder) IncResolve(ResolveKind)               {}
func (NoopRecorder) IncDefaultApplied(string)             {}
