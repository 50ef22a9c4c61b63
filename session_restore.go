package taskgate

import (
	"context"
	"log"
	"strconv"
)

// CheckLoginStatus restores a session from persisted tokens. It reports
// whether the session ended up logged in, never an error: every failure
// path degrades to a clean logged-out state.
//
// The sequence mirrors an app bootstrap: load the stored access token,
// validate it by fetching the profile, and on a rejected token spend the
// refresh token on exactly one renew-and-retry before clearing everything.
func (s *Session) CheckLoginStatus(ctx context.Context) bool {
	if s == nil || s.gateway == nil || s.tokens == nil {
		return false
	}

	if s.IsLoggedIn() {
		return true
	}

	access, err := s.tokens.AccessToken(ctx)
	if err != nil {
		log.Print("taskgate: read persisted access token: ", err)
	}
	if access == "" {
		return false
	}

	s.mu.Lock()
	s.accessToken = access
	s.mu.Unlock()

	profile, err := s.gateway.FetchProfile(ctx)
	if err != nil {
		profile, err = s.retryWithRefresh(ctx)
		if err != nil {
			s.abandonRestore(ctx, err)
			return false
		}
	}

	if profile == nil {
		s.abandonRestore(ctx, ErrMalformedResponse)
		return false
	}

	s.mu.Lock()
	s.profile = profile
	s.perms = DefaultPermissionSet()
	s.permsLoaded = false
	s.mu.Unlock()

	s.metrics.Inc(MetricRestoreSuccess)
	s.emitAudit(ctx, AuditEvent{
		EventType: AuditRestore,
		UserID:    strconv.FormatInt(profile.ID, 10),
		Username:  profile.Username,
		Success:   true,
	})

	s.spawnPermissionFetch()

	return true
}

// retryWithRefresh renews the access token once and refetches the profile.
func (s *Session) retryWithRefresh(ctx context.Context) (*Profile, error) {
	refresh, err := s.tokens.RefreshToken(ctx)
	if err != nil {
		log.Print("taskgate: read persisted refresh token: ", err)
	}
	if refresh == "" {
		return nil, ErrRefreshInvalid
	}

	access, err := s.gateway.RenewToken(ctx, refresh)
	if err != nil {
		s.metrics.Inc(MetricRefreshFailure)
		s.emitAudit(ctx, AuditEvent{
			EventType: AuditTokenRefresh,
			Success:   false,
			Error:     err.Error(),
		})
		return nil, err
	}
	if access == "" {
		s.metrics.Inc(MetricRefreshFailure)
		return nil, ErrMalformedResponse
	}

	s.mu.Lock()
	s.accessToken = access
	s.mu.Unlock()

	if err := s.tokens.SetAccessToken(ctx, access); err != nil {
		log.Print("taskgate: persist renewed access token: ", err)
	}

	s.metrics.Inc(MetricRefreshSuccess)
	s.emitAudit(ctx, AuditEvent{
		EventType: AuditTokenRefresh,
		Success:   true,
	})

	return s.gateway.FetchProfile(ctx)
}

// abandonRestore tears down a half-restored session after a terminal
// restore failure.
func (s *Session) abandonRestore(ctx context.Context, cause error) {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		log.Print("taskgate: clear persisted tokens: ", err)
	}

	s.metrics.Inc(MetricRestoreFailure)
	s.emitAudit(ctx, AuditEvent{
		EventType: AuditRestore,
		Success:   false,
		Error:     cause.Error(),
	})
}
