package service

import (
	"context"

	"quetzal-gate/internal/domain"
)

// AuditService exposes the audit log to administrators.
type AuditService struct {
	repo domain.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo domain.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns the newest audit entries. Administrators only.
func (s *AuditService) List(ctx context.Context) ([]domain.AuditEntry, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, domain.MaxAuditEntries)
}
