package db

import (
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a migrated SQLite pool pair in t.TempDir() and
// registers cleanup.
func OpenTestSQLite(t *testing.T) *Pools {
	t.Helper()

	pools, err := OpenSQLitePair(filepath.Join(t.TempDir(), "test.sqlite"), 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() { _ = pools.Close() })

	if err := RunMigrations(pools.Write, pools.Dialect); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return pools
}
