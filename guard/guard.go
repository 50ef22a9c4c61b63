package guard

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Outcome is the terminal state of one navigation evaluation.
type Outcome uint8

const (
	// OutcomeGranted allows the navigation.
	OutcomeGranted Outcome = iota
	// OutcomeRedirectLogin denies an unauthenticated navigation and
	// captures the intended path as a return target.
	OutcomeRedirectLogin
	// OutcomeRedirectForbidden denies a navigation missing its required
	// permission.
	OutcomeRedirectForbidden
	// OutcomeRedirectHome bounces an already-authenticated user off the
	// login route; the navigation is granted elsewhere.
	OutcomeRedirectHome
)

// String returns the outcome name for logs and metrics labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeRedirectForbidden:
		return "redirect_forbidden"
	case OutcomeRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision is the fully resolved result of one navigation attempt.
// Target is the redirect destination for non-granted outcomes; ReturnTo
// carries the originally intended path on login redirects.
type Decision struct {
	Outcome  Outcome
	Target   string
	ReturnTo string
}

// Authorizer is the session surface the guard consults. The taskgate
// Session satisfies it.
type Authorizer interface {
	IsLoggedIn() bool
	// CheckLoginStatus attempts a restore from persisted credentials,
	// including the single refresh retry, and reports the result.
	CheckLoginStatus(ctx context.Context) bool
	HasPermission(name string) bool
}

// Recorder observes resolved decisions, typically to feed session
// metrics. The taskgate Session satisfies it.
type Recorder interface {
	RecordDecision(outcome Outcome, elapsed time.Duration)
}

// Config holds the guard's redirect targets.
type Config struct {
	LoginPath     string
	HomePath      string
	ForbiddenPath string
}

func (c Config) withDefaults() Config {
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
	if c.HomePath == "" {
		c.HomePath = "/"
	}
	if c.ForbiddenPath == "" {
		c.ForbiddenPath = "/403"
	}
	return c
}

// Option adjusts a Guard.
type Option func(*Guard)

// WithRecorder wires decision observation.
func WithRecorder(r Recorder) Option {
	return func(g *Guard) { g.recorder = r }
}

// Guard evaluates navigation attempts against the session.
type Guard struct {
	auth     Authorizer
	cfg      Config
	recorder Recorder
}

// New builds a Guard over the given Authorizer.
func New(auth Authorizer, cfg Config, opts ...Option) *Guard {
	g := &Guard{auth: auth, cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the transition rule for one navigation attempt to route.
// It blocks until the decision is final: when the session is not logged
// in, the restore (profile fetch plus the single refresh retry) completes
// before a redirect-to-login is issued.
func (g *Guard) Evaluate(ctx context.Context, route Route) Decision {
	start := time.Now()
	decision := g.evaluate(ctx, route)
	if g.recorder != nil {
		g.recorder.RecordDecision(decision.Outcome, time.Since(start))
	}
	return decision
}

func (g *Guard) evaluate(ctx context.Context, route Route) Decision {
	if route.RequiresAuth {
		if !g.auth.IsLoggedIn() && !g.auth.CheckLoginStatus(ctx) {
			return Decision{
				Outcome:  OutcomeRedirectLogin,
				Target:   g.cfg.LoginPath,
				ReturnTo: route.Path,
			}
		}
		if route.Permission != "" && !g.auth.HasPermission(route.Permission) {
			return Decision{
				Outcome: OutcomeRedirectForbidden,
				Target:  g.cfg.ForbiddenPath,
			}
		}
	}

	if route.Path == g.cfg.LoginPath && g.auth.IsLoggedIn() {
		return Decision{Outcome: OutcomeRedirectHome, Target: g.cfg.HomePath}
	}

	return Decision{Outcome: OutcomeGranted}
}

// Middleware adapts the guard to net/http for locally served UIs: the
// request path is resolved through table, evaluated, and either passed
// through or answered with a 303 redirect. Login redirects carry the
// intended path in the redirect query parameter.
func (g *Guard) Middleware(table *Table) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, _ := table.Lookup(r.URL.Path)

			decision := g.Evaluate(r.Context(), route)
			switch decision.Outcome {
			case OutcomeGranted:
				next.ServeHTTP(w, r)
			case OutcomeRedirectLogin:
				target := decision.Target
				if decision.ReturnTo != "" {
					target += "?redirect=" + url.QueryEscape(decision.ReturnTo)
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
			default:
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			}
		})
	}
}
