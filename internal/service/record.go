package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"quetzal-gate/internal/domain"
)

// RecordService logs and corrects vehicle movements.
type RecordService struct {
	repo  domain.RecordRepository
	audit auditor
	now   func() time.Time
}

// NewRecordService creates a new RecordService. A nil now uses time.Now.
func NewRecordService(repo domain.RecordRepository, audit domain.AuditRepository, now func() time.Time, logger *slog.Logger) *RecordService {
	if now == nil {
		now = time.Now
	}
	return &RecordService{repo: repo, audit: newAuditor(audit, logger), now: now}
}

// List returns the most recent movements, newest first.
func (s *RecordService) List(ctx context.Context) ([]domain.Record, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListRecent(ctx, domain.MaxRecentRecords)
}

// Stats summarizes the same window List returns.
func (s *RecordService) Stats(ctx context.Context) (domain.RecordStats, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return domain.RecordStats{}, err
	}
	return s.repo.Stats(ctx, domain.MaxRecentRecords)
}

// Create logs a movement on behalf of the caller. The author is always the
// caller, never client input.
func (s *RecordService) Create(ctx context.Context, req domain.CreateRecordRequest) (*domain.Record, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	eventAt := s.now()
	if req.EventAt != nil && !req.EventAt.IsZero() {
		eventAt = *req.EventAt
	}
	rec, err := s.repo.Create(ctx, &domain.Record{
		Plate:      req.Plate,
		Driver:     req.Driver,
		Direction:  req.Direction,
		EventAt:    eventAt,
		AuthorID:   actor.UserID,
		AuthorName: actor.Name,
	})
	if err != nil {
		return nil, err
	}
	s.audit.log(ctx, actor, "CREATE_RECORD", recordTarget(rec), domain.AuditAllowed)
	return rec, nil
}

// Update replaces a movement's event fields.
func (s *RecordService) Update(ctx context.Context, id int64, req domain.UpdateRecordRequest) (*domain.Record, error) {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.audit.log(ctx, actor, "UPDATE_RECORD", recordTarget(rec), domain.AuditAllowed)
	return rec, nil
}

// Delete removes a movement.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.log(ctx, actor, "DELETE_RECORD", "record #"+strconv.FormatInt(id, 10), domain.AuditAllowed)
	return nil
}

func recordTarget(rec *domain.Record) string {
	return "record #" + strconv.FormatInt(rec.ID, 10) + " " + rec.Plate
}
