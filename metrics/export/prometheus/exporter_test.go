package prometheus

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orchidsoft/taskgate"
)

type fakeSource struct {
	snapshot taskgate.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() taskgate.MetricsSnapshot { return f.snapshot }
func (f *fakeSource) AuditDropped() uint64                      { return f.dropped }

func render(t *testing.T, e *Exporter) string {
	t.Helper()

	rr := httptest.NewRecorder()
	e.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != 200 {
		t.Fatalf("scrape status = %d", rr.Code)
	}
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestExporterCounters(t *testing.T) {
	source := &fakeSource{
		snapshot: taskgate.MetricsSnapshot{
			Counters: map[taskgate.MetricID]uint64{
				taskgate.MetricLoginSuccess: 3,
				taskgate.MetricGuardGranted: 12,
			},
			Histograms: map[taskgate.MetricID][]uint64{},
		},
		dropped: 2,
	}

	body := render(t, NewExporterFromSource(source))

	for _, want := range []string{
		"taskgate_login_success_total 3",
		"taskgate_guard_granted_total 12",
		"taskgate_login_failure_total 0",
		"taskgate_audit_dropped_total 2",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("scrape missing %q:\n%s", want, body)
		}
	}
}

func TestExporterHistogram(t *testing.T) {
	source := &fakeSource{
		snapshot: taskgate.MetricsSnapshot{
			Counters: map[taskgate.MetricID]uint64{},
			Histograms: map[taskgate.MetricID][]uint64{
				taskgate.MetricGuardLatency: {2, 1, 0, 0, 0, 0, 0, 1},
			},
		},
	}

	body := render(t, NewExporterFromSource(source))

	for _, want := range []string{
		`taskgate_guard_latency_seconds_bucket{le="0.005"} 2`,
		`taskgate_guard_latency_seconds_bucket{le="0.01"} 3`,
		`taskgate_guard_latency_seconds_bucket{le="+Inf"} 4`,
		"taskgate_guard_latency_seconds_count 4",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("scrape missing %q:\n%s", want, body)
		}
	}
}

func TestExporterHistogramAbsentWhenDisabled(t *testing.T) {
	source := &fakeSource{
		snapshot: taskgate.MetricsSnapshot{
			Counters:   map[taskgate.MetricID]uint64{},
			Histograms: map[taskgate.MetricID][]uint64{},
		},
	}

	body := render(t, NewExporterFromSource(source))
	if strings.Contains(body, "taskgate_guard_latency_seconds_bucket") {
		t.Fatal("latency histogram published without snapshot data")
	}
}
