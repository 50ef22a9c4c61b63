package taskgate

import (
	"sync"

	"github.com/orchidsoft/taskgate/jwt"
	"github.com/orchidsoft/taskgate/permission"
	"github.com/orchidsoft/taskgate/token"
)

// Session is the client-side authorization core: it owns the current
// identity, the persisted token pair, and the resolved permission set,
// and answers every login-state and permission question the rest of the
// application asks.
//
// All state transitions happen through Login, Logout, CheckLoginStatus
// and FetchPermissions. The struct's fields are guarded by a single
// mutex; accessors copy values out so callers never observe a partially
// applied transition.
type Session struct {
	config  Config
	gateway Gateway
	tokens  *token.Repository
	audit   *auditDispatcher
	metrics *Metrics

	mu          sync.Mutex
	accessToken string
	profile     *Profile
	perms       PermissionSet
	permsLoaded bool

	// permWG tracks in-flight background permission fetches so Close and
	// tests can wait for them to settle.
	permWG sync.WaitGroup
}

// IsLoggedIn reports whether the session holds both an access token and
// an identity. It never touches storage or the network; CheckLoginStatus
// does that.
func (s *Session) IsLoggedIn() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken != "" && s.profile != nil
}

// AccessToken returns the in-memory access token, or "" when logged out.
func (s *Session) AccessToken() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// Profile returns a copy of the current user profile, or nil when the
// session has no identity.
func (s *Session) Profile() *Profile {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	if s.profile.Department != nil {
		d := *s.profile.Department
		p.Department = &d
	}
	return &p
}

// Permissions returns the current permission set and whether it came from
// a completed fetch or apply. Before the first fetch resolves the set is
// the fail-open default and loaded is false.
func (s *Session) Permissions() (PermissionSet, bool) {
	if s == nil {
		return DefaultPermissionSet(), false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permsCopyLocked(), s.permsLoaded
}

// TokenInfo decodes the current access token without verifying its
// signature. Returns ErrNotLoggedIn when there is no token.
func (s *Session) TokenInfo() (*jwt.TokenInfo, error) {
	tok := s.AccessToken()
	if tok == "" {
		return nil, ErrNotLoggedIn
	}
	return jwt.Inspect(tok)
}

// Close flushes and stops the audit dispatcher and waits for any in-flight
// background permission fetch.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.permWG.Wait()
	if s.audit != nil {
		s.audit.Close()
	}
}

// AuditDropped returns how many audit events were discarded because the
// dispatcher buffer was full.
func (s *Session) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all session metrics.
func (s *Session) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

// permsCopyLocked deep-copies the permission set. Callers must hold s.mu.
func (s *Session) permsCopyLocked() PermissionSet {
	out := s.perms
	out.ManagedDepartments = make([]Department, len(s.perms.ManagedDepartments))
	copy(out.ManagedDepartments, s.perms.ManagedDepartments)
	return out
}

// permissionInputLocked builds the resolver input from current state.
// Callers must hold s.mu.
func (s *Session) permissionInputLocked() permission.Input {
	in := permission.Input{
		Flags: permission.Set{
			CanCreateTask:  s.perms.CanCreateTask,
			CanManageUsers: s.perms.CanManageUsers,
			IsAdmin:        s.perms.IsAdmin,
		},
	}
	for _, d := range s.perms.ManagedDepartments {
		in.Flags.ManagedDepartments = append(in.Flags.ManagedDepartments, d.ID)
	}
	if s.profile != nil {
		in.Role = s.profile.Role
		in.Superuser = s.profile.IsSuperuser
		if s.profile.Department != nil {
			in.Department = s.profile.Department.ID
		}
	}
	return in
}

// clearLocked resets all in-memory identity state. Callers must hold s.mu.
func (s *Session) clearLocked() {
	s.accessToken = ""
	s.profile = nil
	s.perms = DefaultPermissionSet()
	s.permsLoaded = false
}
