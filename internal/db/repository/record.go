package repository

import (
	"context"
	"database/sql"
	"time"

	"quetzal-gate/internal/db"
	"quetzal-gate/internal/domain"
)

const recordColumns = "id, plate, driver, direction, event_at, user_id, user_name, created_at"

// RecordRepo implements domain.RecordRepository.
type RecordRepo struct {
	store
}

// NewRecordRepo creates a RecordRepo on pools.
func NewRecordRepo(pools *db.Pools) *RecordRepo {
	return &RecordRepo{store{pools: pools}}
}

var _ domain.RecordRepository = (*RecordRepo)(nil)

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var driver sql.NullString
	var direction string
	if err := row.Scan(&rec.ID, &rec.Plate, &driver, &direction, &rec.EventAt,
		&rec.AuthorID, &rec.AuthorName, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Driver = stringPtr(driver)
	rec.Direction = domain.Direction(direction)
	rec.EventAt = rec.EventAt.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// Create stores rec as given; callers normalize and stamp the author first.
func (r *RecordRepo) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	out := *rec
	out.EventAt = out.EventAt.UTC().Truncate(time.Microsecond)
	out.CreatedAt = now()
	err := r.pools.Write.QueryRowContext(ctx, r.bind(
		`INSERT INTO vehicle_records (plate, driver, direction, event_at, user_id, user_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		out.Plate, nullString(out.Driver), string(out.Direction), out.EventAt,
		out.AuthorID, out.AuthorName, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *RecordRepo) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	return r.get(ctx, r.pools.Read, id)
}

func (r *RecordRepo) get(ctx context.Context, conn *sql.DB, id int64) (*domain.Record, error) {
	rec, err := scanRecord(conn.QueryRowContext(ctx, r.bind(
		`SELECT `+recordColumns+` FROM vehicle_records WHERE id = ?`), id))
	if err != nil {
		return nil, mapDBError(err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest event first.
func (r *RecordRepo) ListRecent(ctx context.Context, limit int) ([]domain.Record, error) {
	rows, err := r.pools.Read.QueryContext(ctx, r.bind(
		`SELECT `+recordColumns+` FROM vehicle_records ORDER BY event_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Update replaces the event fields of record id. Author and creation time are
// not touched.
func (r *RecordRepo) Update(ctx context.Context, id int64, req domain.UpdateRecordRequest) (*domain.Record, error) {
	res, err := r.pools.Write.ExecContext(ctx, r.bind(
		`UPDATE vehicle_records SET plate = ?, driver = ?, direction = ?, event_at = ? WHERE id = ?`),
		req.Plate, nullString(req.Driver), string(req.Direction), req.EventAt.UTC().Truncate(time.Microsecond), id)
	if err != nil {
		return nil, mapDBError(err)
	}
	if err := expectAffected(res, "record", id); err != nil {
		return nil, err
	}
	return r.get(ctx, r.pools.Write, id)
}

func (r *RecordRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.pools.Write.ExecContext(ctx, r.bind(
		`DELETE FROM vehicle_records WHERE id = ?`), id)
	if err != nil {
		return mapDBError(err)
	}
	return expectAffected(res, "record", id)
}

// Stats counts entries and exits among the newest limit records.
func (r *RecordRepo) Stats(ctx context.Context, limit int) (domain.RecordStats, error) {
	var s domain.RecordStats
	err := r.pools.Read.QueryRowContext(ctx, r.bind(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN direction = 'entry' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN direction = 'exit' THEN 1 ELSE 0 END), 0)
		 FROM (SELECT direction FROM vehicle_records ORDER BY event_at DESC, id DESC LIMIT ?) recent`), limit,
	).Scan(&s.Total, &s.Entries, &s.Exits)
	if err != nil {
		return domain.RecordStats{}, err
	}
	return s, nil
}
