package domain

import "time"

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        int64
	ActorID   *int64
	ActorName string
	Action    string
	Target    string
	Status    string // "ALLOWED" or "DENIED"
	CreatedAt time.Time
}

// Audit statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
)

// MaxAuditEntries bounds the audit listing.
const MaxAuditEntries = 200
