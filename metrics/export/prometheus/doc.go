// Package prometheus exposes session metrics as a Prometheus collector.
//
// [NewExporter] accepts a [taskgate.Session] and yields a
// [prometheus.Collector] plus an [net/http.Handler] backed by a private
// registry. Counter names are prefixed taskgate_*_total; the single
// histogram is taskgate_guard_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry — callers mount
//     the Handler or register the collector themselves.
//   - Mutate session state.
package prometheus
