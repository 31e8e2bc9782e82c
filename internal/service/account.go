package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"quetzal-gate/internal/domain"
)

// AccountService manages accounts and checks credentials.
type AccountService struct {
	repo   domain.AccountRepository
	hasher PasswordHasher
	audit  auditor
}

// NewAccountService creates a new AccountService. Audit write failures go
// to logger; a nil logger discards them.
func NewAccountService(repo domain.AccountRepository, hasher PasswordHasher, audit domain.AuditRepository, logger *slog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, audit: newAuditor(audit, logger)}
}

// Authenticate returns the active account matching email and password.
// Unknown, inactive and wrong-password cases share one error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrValidation("email and password are required")
	}

	a, err := s.repo.GetActiveByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			s.audit.log(ctx, domain.Identity{Email: email}, "LOGIN", email, domain.AuditDenied)
			return nil, domain.ErrUnauthenticated("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, a.PasswordHash) {
		s.audit.log(ctx, domain.IdentityFromAccount(a), "LOGIN", email, domain.AuditDenied)
		return nil, domain.ErrUnauthenticated("invalid credentials")
	}
	s.audit.log(ctx, domain.IdentityFromAccount(a), "LOGIN", email, domain.AuditAllowed)
	return a, nil
}

// List returns every account, newest first.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Create validates and persists a new active account.
func (s *AccountService) Create(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	taken, err := s.repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrConflict("email %q is already in use", req.Email)
	}
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.Create(ctx, &domain.Account{
		Email:        req.Email,
		PasswordHash: digest,
		Name:         req.Name,
		Role:         req.Role,
		Active:       true,
	})
	if err != nil {
		return nil, err
	}
	s.audit.log(ctx, actor, "CREATE_USER", a.Email, domain.AuditAllowed)
	return a, nil
}

// Update replaces an account's fields. The password is re-hashed only when
// one is supplied. Sessions already issued keep their old claims.
func (s *AccountService) Update(ctx context.Context, id int64, req domain.UpdateAccountRequest) (*domain.Account, error) {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	taken, err := s.repo.EmailTaken(ctx, req.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrConflict("email %q is already in use", req.Email)
	}

	u := domain.AccountUpdate{
		Email:  req.Email,
		Name:   req.Name,
		Role:   req.Role,
		Active: *req.Active,
	}
	if req.Password != "" {
		digest, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = &digest
	}
	a, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return nil, err
	}
	s.audit.log(ctx, actor, "UPDATE_USER", a.Email, domain.AuditAllowed)
	return a, nil
}

// Deactivate soft-deletes an account. Repeating it is a no-op.
func (s *AccountService) Deactivate(ctx context.Context, id int64) error {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.audit.log(ctx, actor, "DEACTIVATE_USER", a.Email, domain.AuditAllowed)
	return nil
}

// SeedAdmin creates the bootstrap administrator or resets and re-activates
// the existing account with that email.
func (s *AccountService) SeedAdmin(ctx context.Context, email, name, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return nil, domain.ErrValidation("email, name and password are required")
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.UpsertAdmin(ctx, &domain.Account{Email: email, PasswordHash: digest, Name: name})
	if err != nil {
		return nil, err
	}
	s.audit.log(ctx, domain.Identity{Email: "system"}, "SEED_ADMIN", a.Email+" #"+strconv.FormatInt(a.ID, 10), domain.AuditAllowed)
	return a, nil
}
