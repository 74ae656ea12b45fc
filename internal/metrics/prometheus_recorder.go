package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	resolveDuration prom.Histogram
	resolves        *prom.CounterVec
	defaultsApplied *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.resolveDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "buildconsts",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a constants resolution pass",
			Buckets:   prom.DefBuckets,
		})
		pr.resolves = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "buildconsts",
			Name:      "resolves_total",
			Help:      "Resolution passes by kind (initial or refresh)",
		}, []string{"kind"})
		pr.defaultsApplied = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "buildconsts",
			Name:      "defaults_applied_total",
			Help:      "Constants filled in by default-path detection",
		}, []string{"constant"})
		reg.MustRegister(pr.resolveDuration, pr.resolves, pr.defaultsApplied)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(d time.Duration) {
	if p == nil || p.resolveDuration == nil {
		return
	}
	p.resolveDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncResolve(kind ResolveKind) {
	if p == nil || p.resolves == nil {
		return
	}
	p.resolves.WithLabelValues(string(kind)).Inc()
}

func (p *PrometheusRecorder) IncDefaultApplied(constant string) {
	if p == nil || p.defaultsApplied == nil {
		return
	}
	p.defaultsApplied.WithLabelValues(constant).Inc()
}
