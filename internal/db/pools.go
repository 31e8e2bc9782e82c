package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Dialect names the SQL dialect behind a pool pair.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// Pools is the write/read pool pair used by repositories. With Postgres both
// fields point at the same pool.
type Pools struct {
	Write   *sql.DB
	Read    *sql.DB
	Dialect Dialect
}

// Open selects the driver from databaseURL. postgres:// and postgresql://
// URLs use pgx; anything else is treated as a SQLite file path, with an
// optional sqlite:// prefix.
func Open(databaseURL string) (*Pools, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, errors.New("database url is required")
	}
	if IsPostgresURL(databaseURL) {
		return OpenPostgres(databaseURL)
	}
	return OpenSQLitePair(strings.TrimPrefix(databaseURL, "sqlite://"), defaultReadConns)
}

// IsPostgresURL reports whether u addresses a Postgres server.
func IsPostgresURL(u string) bool {
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}

// Ping checks the read pool.
func (p *Pools) Ping(ctx context.Context) error {
	if err := p.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", p.Dialect, err)
	}
	return nil
}

// Close closes both pools.
func (p *Pools) Close() error {
	err := p.Write.Close()
	if p.Read != p.Write {
		err = errors.Join(err, p.Read.Close())
	}
	return err
}
