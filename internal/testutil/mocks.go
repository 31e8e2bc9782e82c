// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"context"
	"sync"

	"quetzal-gate/internal/domain"
)

// MockAuditRepo implements domain.AuditRepository and records every insert.
type MockAuditRepo struct {
	InsertFn func(ctx context.Context, e *domain.AuditEntry) error
	ListFn   func(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	mu      sync.Mutex
	Entries []*domain.AuditEntry
}

// Insert implements the interface method for testing.
func (m *MockAuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if m.InsertFn != nil {
		if err := m.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Entries = append(m.Entries, e)
	m.mu.Unlock()
	return nil
}

// List implements the interface method for testing.
func (m *MockAuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	panic("unexpected call to MockAuditRepo.List")
}

// LastEntry returns the last collected audit entry, or nil if none.
func (m *MockAuditRepo) LastEntry() *domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Entries) == 0 {
		return nil
	}
	return m.Entries[len(m.Entries)-1]
}

// HasAction returns true if any collected entry has the given action and status.
func (m *MockAuditRepo) HasAction(action, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Action == action && e.Status == status {
			return true
		}
	}
	return false
}

// PlainHasher is a PasswordHasher that stores passwords with a fixed prefix.
// It keeps service tests fast; never use it outside tests.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (PlainHasher) Verify(password, digest string) bool { return digest == "plain:"+password }
