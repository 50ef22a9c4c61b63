package taskgate

import (
	"time"

	"github.com/orchidsoft/taskgate/guard"
)

// NewGuard builds a route guard backed by this session, wired into the
// session's metrics and audit trail.
func (s *Session) NewGuard(cfg guard.Config) *guard.Guard {
	return guard.New(s, cfg, guard.WithRecorder(s))
}

// RecordDecision implements guard.Recorder: every evaluated route bumps
// the matching outcome counter and feeds the latency histogram.
func (s *Session) RecordDecision(outcome guard.Outcome, elapsed time.Duration) {
	if s == nil {
		return
	}

	switch outcome {
	case guard.OutcomeGranted:
		s.metrics.Inc(MetricGuardGranted)
	case guard.OutcomeRedirectLogin:
		s.metrics.Inc(MetricGuardRedirectLogin)
	case guard.OutcomeRedirectForbidden:
		s.metrics.Inc(MetricGuardRedirectForbidden)
	case guard.OutcomeRedirectHome:
		s.metrics.Inc(MetricGuardRedirectHome)
	}
	s.metrics.Observe(MetricGuardLatency, elapsed)
}
