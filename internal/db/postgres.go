package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const defaultPostgresConns = 10

// OpenPostgres opens a pgx-backed pool shared by reads and writes.
func OpenPostgres(url string) (*Pools, error) {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(defaultPostgresConns)
	conn.SetMaxIdleConns(defaultPostgresConns / 2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Pools{Write: conn, Read: conn, Dialect: DialectPostgres}, nil
}
