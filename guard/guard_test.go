package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeAuthorizer scripts the session surface. restoreResult is what
// CheckLoginStatus reports after the simulated restore; restored tracks
// whether the guard actually invoked it.
type fakeAuthorizer struct {
	loggedIn      bool
	restoreResult bool
	restored      bool
	permissions   map[string]bool
}

func (f *fakeAuthorizer) IsLoggedIn() bool { return f.loggedIn }

func (f *fakeAuthorizer) CheckLoginStatus(context.Context) bool {
	f.restored = true
	f.loggedIn = f.restoreResult
	return f.restoreResult
}

func (f *fakeAuthorizer) HasPermission(name string) bool { return f.permissions[name] }

func TestEvaluatePublicRoute(t *testing.T) {
	auth := &fakeAuthorizer{}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{Path: "/about"})
	if d.Outcome != OutcomeGranted {
		t.Fatalf("public route outcome = %v, want granted", d.Outcome)
	}
	if auth.restored {
		t.Fatal("public route must not trigger a restore")
	}
}

func TestEvaluateRestoreBeforeLoginRedirect(t *testing.T) {
	auth := &fakeAuthorizer{restoreResult: false}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{Path: "/tasks", RequiresAuth: true})
	if !auth.restored {
		t.Fatal("guard must attempt restore before denying")
	}
	if d.Outcome != OutcomeRedirectLogin || d.Target != "/login" {
		t.Fatalf("decision = %+v, want redirect to /login", d)
	}
	if d.ReturnTo != "/tasks" {
		t.Fatalf("ReturnTo = %q, want /tasks", d.ReturnTo)
	}
}

func TestEvaluateRestoreSucceeds(t *testing.T) {
	auth := &fakeAuthorizer{restoreResult: true, permissions: map[string]bool{}}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{Path: "/tasks", RequiresAuth: true})
	if d.Outcome != OutcomeGranted {
		t.Fatalf("outcome after successful restore = %v, want granted", d.Outcome)
	}
}

func TestEvaluatePermissionDenied(t *testing.T) {
	// Logged-in dept_manager navigating to an admin-only route.
	auth := &fakeAuthorizer{
		loggedIn:    true,
		permissions: map[string]bool{"is_dept_manager": true},
	}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{
		Path:         "/departments",
		RequiresAuth: true,
		Permission:   "is_admin",
	})
	if d.Outcome != OutcomeRedirectForbidden || d.Target != "/403" {
		t.Fatalf("decision = %+v, want redirect to /403", d)
	}
}

func TestEvaluatePermissionGranted(t *testing.T) {
	auth := &fakeAuthorizer{
		loggedIn:    true,
		permissions: map[string]bool{"can_create_task": true},
	}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{
		Path:         "/tasks/create",
		RequiresAuth: true,
		Permission:   "can_create_task",
	})
	if d.Outcome != OutcomeGranted {
		t.Fatalf("outcome = %v, want granted", d.Outcome)
	}
}

func TestEvaluateLoginRouteWhileLoggedIn(t *testing.T) {
	auth := &fakeAuthorizer{loggedIn: true}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{Path: "/login"})
	if d.Outcome != OutcomeRedirectHome || d.Target != "/" {
		t.Fatalf("decision = %+v, want redirect home", d)
	}
}

func TestEvaluateLoginRouteWhileLoggedOut(t *testing.T) {
	auth := &fakeAuthorizer{}
	g := New(auth, Config{})

	d := g.Evaluate(context.Background(), Route{Path: "/login"})
	if d.Outcome != OutcomeGranted {
		t.Fatalf("outcome = %v, want granted", d.Outcome)
	}
}

type recordedDecision struct {
	outcome Outcome
	elapsed time.Duration
}

type fakeRecorder struct {
	decisions []recordedDecision
}

func (r *fakeRecorder) RecordDecision(o Outcome, d time.Duration) {
	r.decisions = append(r.decisions, recordedDecision{o, d})
}

func TestEvaluateRecordsDecision(t *testing.T) {
	rec := &fakeRecorder{}
	g := New(&fakeAuthorizer{loggedIn: true}, Config{}, WithRecorder(rec))

	g.Evaluate(context.Background(), Route{Path: "/tasks", RequiresAuth: true})
	if len(rec.decisions) != 1 || rec.decisions[0].outcome != OutcomeGranted {
		t.Fatalf("recorded decisions = %+v", rec.decisions)
	}
}

func TestTableLookup(t *testing.T) {
	table := NewTable(
		Route{Path: "/login", Name: "Login"},
		Route{Path: "/tasks", Name: "Tasks", RequiresAuth: true},
	)

	r, ok := table.Lookup("/tasks")
	if !ok || !r.RequiresAuth {
		t.Fatalf("Lookup(/tasks) = (%+v, %v)", r, ok)
	}

	r, ok = table.Lookup("/nope")
	if ok || r.Path != "/404" {
		t.Fatalf("Lookup(/nope) = (%+v, %v), want not-found route", r, ok)
	}
	if r.RequiresAuth {
		t.Fatal("not-found route must not require auth")
	}
}

func TestMiddleware(t *testing.T) {
	table := NewTable(
		Route{Path: "/login"},
		Route{Path: "/tasks", RequiresAuth: true},
		Route{Path: "/departments", RequiresAuth: true, Permission: "is_admin"},
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("denied login redirect carries return target", func(t *testing.T) {
		auth := &fakeAuthorizer{}
		handler := New(auth, Config{}).Middleware(table)(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want 303", rr.Code)
		}
		if got := rr.Header().Get("Location"); got != "/login?redirect=%2Ftasks" {
			t.Fatalf("Location = %q", got)
		}
	})

	t.Run("forbidden redirect", func(t *testing.T) {
		auth := &fakeAuthorizer{loggedIn: true, permissions: map[string]bool{}}
		handler := New(auth, Config{}).Middleware(table)(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/departments", nil))

		if got := rr.Header().Get("Location"); got != "/403" {
			t.Fatalf("Location = %q, want /403", got)
		}
	})

	t.Run("granted passes through", func(t *testing.T) {
		auth := &fakeAuthorizer{loggedIn: true, permissions: map[string]bool{"is_admin": true}}
		handler := New(auth, Config{}).Middleware(table)(next)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/departments", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
	})
}
