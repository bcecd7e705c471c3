package ports

import (
	"context"

	"github.com/bountyhq/platform-api/internal/core/domain"
)

// AuditRepository appends entries to the audit log. Implementations are
// the only component allowed to fail an audit write; callers above the
// sink never see that failure.
type AuditRepository interface {
	Append(ctx context.Context, entry domain.AuditLogEntry) error
}

// AuditSink records the outcome of gated actions. Record must not block
// the request path and must never surface a persistence failure to the
// caller; entries are recorded only for actions that completed.
type AuditSink interface {
	Record(ctx context.Context, ac domain.ApiContext, action, entity, entityID string, metadata map[string]any)
}
