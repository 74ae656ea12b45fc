// Package metrics provides observability hooks for constants resolution.
// Components receive a Recorder through dependency injection; NoopRecorder
// is the default so metrics stay optional, and NewPrometheusRecorder swaps
// in real collection when a registry is configured.
package metrics
