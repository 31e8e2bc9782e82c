// Package service holds the account, movement record and audit operations.
package service

import (
	"context"
	"log/slog"

	"quetzal-gate/internal/domain"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// requireIdentity returns the caller stored in ctx by the HTTP layer.
func requireIdentity(ctx context.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated("authentication required")
	}
	return id, nil
}

// requireAdmin checks that the caller in ctx is an administrator.
func requireAdmin(ctx context.Context) (domain.Identity, error) {
	id, err := requireIdentity(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if !id.IsAdmin() {
		return domain.Identity{}, domain.ErrForbidden("administrator role required")
	}
	return id, nil
}

// auditor writes audit entries without failing the caller; insert errors
// are logged.
type auditor struct {
	repo   domain.AuditRepository
	logger *slog.Logger
}

func newAuditor(repo domain.AuditRepository, logger *slog.Logger) auditor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return auditor{repo: repo, logger: logger.With("component", "service")}
}

func (a auditor) log(ctx context.Context, actor domain.Identity, action, target, status string) {
	e := &domain.AuditEntry{
		ActorName: actor.Email,
		Action:    action,
		Target:    target,
		Status:    status,
	}
	if actor.UserID > 0 {
		uid := actor.UserID
		e.ActorID = &uid
	}
	if err := a.repo.Insert(ctx, e); err != nil {
		a.logger.WarnContext(ctx, "audit insert failed",
			"error", err,
			"action", action,
			"target", target,
		)
	}
}
