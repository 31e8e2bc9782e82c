package repository

import (
	"context"
	"database/sql"

	"quetzal-gate/internal/db"
	"quetzal-gate/internal/domain"
)

const accountColumns = "id, email, password_hash, name, role, active, created_at"

// AccountRepo implements domain.AccountRepository.
type AccountRepo struct {
	store
}

// NewAccountRepo creates an AccountRepo on pools.
func NewAccountRepo(pools *db.Pools) *AccountRepo {
	return &AccountRepo{store{pools: pools}}
}

var _ domain.AccountRepository = (*AccountRepo)(nil)

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &role, &a.Active, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	out := *a
	out.CreatedAt = now()
	err := r.pools.Write.QueryRowContext(ctx, r.bind(
		`INSERT INTO users (email, password_hash, name, role, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		out.Email, out.PasswordHash, out.Name, string(out.Role), out.Active, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, r.pools.Read, id)
}

func (r *AccountRepo) get(ctx context.Context, conn *sql.DB, id int64) (*domain.Account, error) {
	a, err := scanAccount(conn.QueryRowContext(ctx, r.bind(
		`SELECT `+accountColumns+` FROM users WHERE id = ?`), id))
	if err != nil {
		return nil, mapDBError(err)
	}
	return a, nil
}

// GetActiveByEmail returns the active account with exactly this email.
func (r *AccountRepo) GetActiveByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, err := scanAccount(r.pools.Read.QueryRowContext(ctx, r.bind(
		`SELECT `+accountColumns+` FROM users WHERE email = ? AND active = ?`), email, true))
	if err != nil {
		return nil, mapDBError(err)
	}
	return a, nil
}

// EmailTaken reports whether any account other than excludeID uses email.
// Pass 0 to check against every account.
func (r *AccountRepo) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := r.pools.Read.QueryRowContext(ctx, r.bind(
		`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`), email, excludeID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.pools.Read.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of account id. The stored digest changes
// only when u.PasswordHash is set.
func (r *AccountRepo) Update(ctx context.Context, id int64, u domain.AccountUpdate) (*domain.Account, error) {
	query := `UPDATE users SET email = ?, name = ?, role = ?, active = ? WHERE id = ?`
	args := []any{u.Email, u.Name, string(u.Role), u.Active, id}
	if u.PasswordHash != nil {
		query = `UPDATE users SET email = ?, name = ?, role = ?, active = ?, password_hash = ? WHERE id = ?`
		args = []any{u.Email, u.Name, string(u.Role), u.Active, *u.PasswordHash, id}
	}
	res, err := r.pools.Write.ExecContext(ctx, r.bind(query), args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := expectAffected(res, "user", id); err != nil {
		return nil, err
	}
	return r.get(ctx, r.pools.Write, id)
}

func (r *AccountRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.pools.Write.ExecContext(ctx, r.bind(
		`UPDATE users SET active = ? WHERE id = ?`), active, id)
	if err != nil {
		return mapDBError(err)
	}
	return expectAffected(res, "user", id)
}

// UpsertAdmin inserts a, or on an email clash resets that row's digest and
// role and re-activates it. The stored name is kept.
func (r *AccountRepo) UpsertAdmin(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	var id int64
	err := r.pools.Write.QueryRowContext(ctx, r.bind(
		`INSERT INTO users (email, password_hash, name, role, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET
		   password_hash = excluded.password_hash,
		   role = excluded.role,
		   active = excluded.active
		 RETURNING id`),
		a.Email, a.PasswordHash, a.Name, string(domain.RoleAdmin), true, now(),
	).Scan(&id)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.get(ctx, r.pools.Write, id)
}
