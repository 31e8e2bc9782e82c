package domain

import "context"

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetActiveByEmail(ctx context.Context, email string) (*Account, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, id int64, u AccountUpdate) (*Account, error)
	SetActive(ctx context.Context, id int64, active bool) error
	UpsertAdmin(ctx context.Context, a *Account) (*Account, error)
}

// RecordRepository persists movement records.
type RecordRepository interface {
	Create(ctx context.Context, rec *Record) (*Record, error)
	GetByID(ctx context.Context, id int64) (*Record, error)
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	Update(ctx context.Context, id int64, req UpdateRecordRequest) (*Record, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, limit int) (RecordStats, error)
}

// AuditRepository provides operations for audit log entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, limit int) ([]AuditEntry, error)
}
