package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeToCall(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveResolveDuration(time.Second)
	r.IncResolve(ResolveInitial)
	r.IncDefaultApplied("FUNCTIONS_SRC")
}

func TestPrometheusRecorder_RegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveResolveDuration(10 * time.Millisecond)
	r.IncResolve(ResolveInitial)
	r.IncResolve(ResolveRefresh)
	r.IncDefaultApplied("FUNCTIONS_SRC")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["buildconsts_resolve_duration_seconds"])
	require.True(t, names["buildconsts_resolves_total"])
	require.True(t, names["buildconsts_defaults_applied_total"])
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.ObserveResolveDuration(time.Second)
	r.IncResolve(ResolveRefresh)
	r.IncDefaultApplied("EDGE_FUNCTIONS_SRC")
}
