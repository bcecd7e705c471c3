package domain

import "time"

// AuditLogEntry records one authorized mutation: who did what, on which
// entity. Entries are write-once and append-only; persistence is owned by
// the audit sink and is best-effort relative to the response path.
type AuditLogEntry struct {
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
