package taskgate

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

// Login authenticates against the gateway and installs the resulting
// identity. The session is considered logged in as soon as Login returns
// nil; the permission set is fetched in the background and stays at the
// fail-open default until that fetch resolves.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if s == nil || s.gateway == nil || s.tokens == nil {
		return ErrSessionNotReady
	}

	result, err := s.gateway.Authenticate(ctx, username, password)
	if err != nil {
		s.metrics.Inc(MetricLoginFailure)
		s.emitAudit(ctx, AuditEvent{
			EventType: AuditLogin,
			Username:  username,
			Success:   false,
			Error:     err.Error(),
		})
		return fmt.Errorf("login: %w", err)
	}

	if result == nil || result.AccessToken == "" || result.Profile == nil {
		s.metrics.Inc(MetricLoginFailure)
		return fmt.Errorf("login: %w", ErrMalformedResponse)
	}

	s.mu.Lock()
	s.accessToken = result.AccessToken
	s.profile = result.Profile
	s.perms = DefaultPermissionSet()
	s.permsLoaded = false
	s.mu.Unlock()

	// Persistence is best effort: a storage failure must not undo a
	// successful authentication.
	if err := s.tokens.SetAccessToken(ctx, result.AccessToken); err != nil {
		log.Print("taskgate: persist access token: ", err)
	}
	if result.RefreshToken != "" {
		if err := s.tokens.SetRefreshToken(ctx, result.RefreshToken); err != nil {
			log.Print("taskgate: persist refresh token: ", err)
		}
	}

	s.metrics.Inc(MetricLoginSuccess)
	s.emitAudit(ctx, AuditEvent{
		EventType: AuditLogin,
		UserID:    strconv.FormatInt(result.Profile.ID, 10),
		Username:  result.Profile.Username,
		Success:   true,
	})

	s.spawnPermissionFetch()

	return nil
}

// Logout tears the session down unconditionally. The server is notified
// on a best-effort basis; local state and persisted tokens are cleared
// even when that call fails, so Logout has no error to return.
func (s *Session) Logout(ctx context.Context) {
	if s == nil || s.gateway == nil || s.tokens == nil {
		return
	}

	refresh, err := s.tokens.RefreshToken(ctx)
	if err != nil {
		log.Print("taskgate: read refresh token for logout: ", err)
	}
	if refresh != "" {
		if err := s.gateway.EndSession(ctx, refresh); err != nil {
			log.Print("taskgate: server logout: ", err)
		}
	}

	s.mu.Lock()
	var userID string
	if s.profile != nil {
		userID = strconv.FormatInt(s.profile.ID, 10)
	}
	s.clearLocked()
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		log.Print("taskgate: clear persisted tokens: ", err)
	}

	s.metrics.Inc(MetricLogout)
	s.emitAudit(ctx, AuditEvent{
		EventType: AuditLogout,
		UserID:    userID,
		Success:   true,
	})
}
