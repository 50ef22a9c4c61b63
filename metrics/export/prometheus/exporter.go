package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orchidsoft/taskgate"
	"github.com/orchidsoft/taskgate/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() taskgate.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter adapts a session's metric snapshot into a prometheus.Collector.
// Collection reads a fresh snapshot on every scrape, so the exporter holds
// no state of its own.
type Exporter struct {
	source metricsSource

	counterDescs  []*prometheus.Desc
	histogramDesc *prometheus.Desc
	droppedDesc   *prometheus.Desc
}

var _ prometheus.Collector = (*Exporter)(nil)

// NewExporter creates an exporter reading from the given session.
func NewExporter(session *taskgate.Session) *Exporter {
	return NewExporterFromSource(session)
}

// NewExporterFromSource creates an exporter from a custom snapshot source.
func NewExporterFromSource(source metricsSource) *Exporter {
	e := &Exporter{source: source}

	e.counterDescs = make([]*prometheus.Desc, len(internaldefs.CounterDefs))
	for i, def := range internaldefs.CounterDefs {
		e.counterDescs[i] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	e.histogramDesc = prometheus.NewDesc(
		internaldefs.HistogramDefs[0].Name,
		internaldefs.HistogramDefs[0].Help,
		nil, nil,
	)
	e.droppedDesc = prometheus.NewDesc(
		"taskgate_audit_dropped_total",
		"Dropped audit events due to dispatcher backpressure.",
		nil, nil,
	)

	return e
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range e.counterDescs {
		ch <- desc
	}
	ch <- e.histogramDesc
	ch <- e.droppedDesc
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	if e == nil || e.source == nil {
		return
	}

	snapshot := e.source.MetricsSnapshot()

	for i, def := range internaldefs.CounterDefs {
		ch <- prometheus.MustNewConstMetric(
			e.counterDescs[i],
			prometheus.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}

	if raw, ok := snapshot.Histograms[internaldefs.HistogramDefs[0].ID]; ok {
		ch <- e.constHistogram(raw)
	}

	ch <- prometheus.MustNewConstMetric(
		e.droppedDesc,
		prometheus.CounterValue,
		float64(e.source.AuditDropped()),
	)
}

// constHistogram rebuilds a Prometheus histogram from the core's fixed
// bucket counts. The core does not track a sum of observations, so the
// sum is published as zero.
func (e *Exporter) constHistogram(raw []uint64) prometheus.Metric {
	cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(raw))

	buckets := make(map[float64]uint64, len(internaldefs.HistogramBounds))
	for i, le := range internaldefs.HistogramBounds {
		buckets[le] = cumulative[i]
	}
	count := cumulative[len(cumulative)-1]

	return prometheus.MustNewConstHistogram(e.histogramDesc, count, 0, buckets)
}

// Handler returns an http.Handler serving this exporter's metrics from a
// private registry.
func (e *Exporter) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(e)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
