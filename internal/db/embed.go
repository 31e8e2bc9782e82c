package db

import "embed"

// EmbedMigrations contains the per-dialect SQL migration files.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var EmbedMigrations embed.FS
