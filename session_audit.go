package taskgate

import (
	"context"
	"time"
)

// emitAudit stamps and dispatches an event. Safe to call with auditing
// disabled.
func (s *Session) emitAudit(ctx context.Context, event AuditEvent) {
	if s == nil || s.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		if event.Metadata == nil {
			event.Metadata = map[string]string{}
		}
		event.Metadata["request_id"] = id
	}
	s.audit.Emit(ctx, event)
}
