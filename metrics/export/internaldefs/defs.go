package internaldefs

import (
	"github.com/orchidsoft/taskgate"
)

// CounterDef binds a core counter to its published name.
type CounterDef struct {
	ID   taskgate.MetricID
	Name string
	Help string
}

// HistogramDef binds a core histogram to its published name.
type HistogramDef struct {
	ID   taskgate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in publication order.
var CounterDefs = []CounterDef{
	{ID: taskgate.MetricLoginSuccess, Name: "taskgate_login_success_total", Help: "Successful login attempts."},
	{ID: taskgate.MetricLoginFailure, Name: "taskgate_login_failure_total", Help: "Failed login attempts."},
	{ID: taskgate.MetricLogout, Name: "taskgate_logout_total", Help: "Logout operations."},
	{ID: taskgate.MetricRestoreSuccess, Name: "taskgate_restore_success_total", Help: "Session restores that ended logged in."},
	{ID: taskgate.MetricRestoreFailure, Name: "taskgate_restore_failure_total", Help: "Session restores that cleared the session."},
	{ID: taskgate.MetricRefreshSuccess, Name: "taskgate_refresh_success_total", Help: "Successful access token renewals."},
	{ID: taskgate.MetricRefreshFailure, Name: "taskgate_refresh_failure_total", Help: "Rejected access token renewals."},
	{ID: taskgate.MetricPermissionFetchSuccess, Name: "taskgate_permission_fetch_success_total", Help: "Permission fetches applied from the server."},
	{ID: taskgate.MetricPermissionFallback, Name: "taskgate_permission_fallback_total", Help: "Permission fetches replaced by the default set."},
	{ID: taskgate.MetricGuardGranted, Name: "taskgate_guard_granted_total", Help: "Route evaluations that passed."},
	{ID: taskgate.MetricGuardRedirectLogin, Name: "taskgate_guard_redirect_login_total", Help: "Route evaluations redirected to login."},
	{ID: taskgate.MetricGuardRedirectForbidden, Name: "taskgate_guard_redirect_forbidden_total", Help: "Route evaluations redirected to the forbidden page."},
	{ID: taskgate.MetricGuardRedirectHome, Name: "taskgate_guard_redirect_home_total", Help: "Logged-in login-route visits sent home."},
}

// HistogramDefs lists every exported histogram in publication order.
var HistogramDefs = []HistogramDef{
	{ID: taskgate.MetricGuardLatency, Name: "taskgate_guard_latency_seconds", Help: "Guard evaluation latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the core latency
// buckets. The implicit final bucket is +Inf.
var HistogramBounds = []float64{
	0.005,
	0.01,
	0.025,
	0.05,
	0.1,
	0.25,
	0.5,
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
