package taskgate

import (
	"context"
	"log"

	"github.com/orchidsoft/taskgate/permission"
)

// spawnPermissionFetch starts a background fetch detached from the caller.
// The fetch deadline comes from configuration, not from the login request
// context, so a caller returning early cannot starve it.
func (s *Session) spawnPermissionFetch() {
	s.permWG.Add(1)
	go func() {
		defer s.permWG.Done()
		s.FetchPermissions(context.Background())
	}()
}

// FetchPermissions races a gateway permission fetch against the configured
// timeout and applies whichever side wins: the server's set on success, the
// fail-open default otherwise. The losing fetch is cancelled. It returns
// the set that ended up applied.
func (s *Session) FetchPermissions(ctx context.Context) PermissionSet {
	if s == nil || s.gateway == nil {
		return DefaultPermissionSet()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.config.Permission.FetchTimeout)
	defer cancel()

	type fetchResult struct {
		set *PermissionSet
		err error
	}

	ch := make(chan fetchResult, 1)
	go func() {
		set, err := s.gateway.FetchPermissionSet(fetchCtx)
		ch <- fetchResult{set: set, err: err}
	}()

	select {
	case r := <-ch:
		if r.err == nil && r.set != nil {
			applied := s.applyPermissions(*r.set)
			s.metrics.Inc(MetricPermissionFetchSuccess)
			s.emitAudit(ctx, AuditEvent{
				EventType: AuditPermissionFetch,
				Success:   true,
			})
			return applied
		}
		return s.fallbackPermissions(ctx, r.err)
	case <-fetchCtx.Done():
		return s.fallbackPermissions(ctx, fetchCtx.Err())
	}
}

// fallbackPermissions installs the default set after a failed or timed-out
// fetch. A permission failure never surfaces as an error to the caller.
func (s *Session) fallbackPermissions(ctx context.Context, cause error) PermissionSet {
	if cause != nil {
		log.Print("taskgate: permission fetch failed, using defaults: ", cause)
	}

	applied := s.applyPermissions(DefaultPermissionSet())
	s.metrics.Inc(MetricPermissionFallback)

	event := AuditEvent{
		EventType: AuditPermissionFallback,
		Success:   false,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	s.emitAudit(ctx, event)

	return applied
}

// applyPermissions atomically replaces the permission set. Concurrent
// applies are last-writer-wins. A set arriving after logout is discarded.
func (s *Session) applyPermissions(set PermissionSet) PermissionSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken == "" {
		return DefaultPermissionSet()
	}

	if set.ManagedDepartments == nil {
		set.ManagedDepartments = []Department{}
	}
	s.perms = set
	s.permsLoaded = true

	return s.permsCopyLocked()
}

// HasPermission answers a named permission check against current state.
// Admins pass every check, including names outside the known set; for
// everyone else unknown names are denied.
func (s *Session) HasPermission(name string) bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken == "" {
		return false
	}

	in := s.permissionInputLocked()
	if permission.IsAdmin(in) {
		return true
	}

	check, ok := permission.ParseCheck(name)
	if !ok {
		return false
	}
	return permission.Resolve(in, check)
}

// CanAccessDepartment reports whether the current user may act on the
// given department.
func (s *Session) CanAccessDepartment(deptID int64) bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken == "" {
		return false
	}
	return permission.CanAccessDepartment(s.permissionInputLocked(), deptID)
}
