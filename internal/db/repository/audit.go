package repository

import (
	"context"
	"database/sql"

	"quetzal-gate/internal/db"
	"quetzal-gate/internal/domain"
)

// AuditRepo implements domain.AuditRepository.
type AuditRepo struct {
	store
}

// NewAuditRepo creates an AuditRepo on pools.
func NewAuditRepo(pools *db.Pools) *AuditRepo {
	return &AuditRepo{store{pools: pools}}
}

var _ domain.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	var actorID sql.NullInt64
	if e.ActorID != nil {
		actorID = sql.NullInt64{Int64: *e.ActorID, Valid: true}
	}
	_, err := r.pools.Write.ExecContext(ctx, r.bind(
		`INSERT INTO audit_log (actor_id, actor_name, action, target, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		actorID, e.ActorName, e.Action, e.Target, e.Status, createdAt.UTC())
	return mapDBError(err)
}

// List returns up to limit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.pools.Read.QueryContext(ctx, r.bind(
		`SELECT id, actor_id, actor_name, action, target, status, created_at
		 FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var actorID sql.NullInt64
		if err := rows.Scan(&e.ID, &actorID, &e.ActorName, &e.Action, &e.Target, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		if actorID.Valid {
			id := actorID.Int64
			e.ActorID = &id
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
