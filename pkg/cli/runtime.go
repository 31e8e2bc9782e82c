package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"quetzal-gate/internal/config"
	"quetzal-gate/internal/db"
)

// storeFlags are the flags every store-touching command shares.
type storeFlags struct {
	database string
}

func (f *storeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.database, "database", "", "SQLite path or postgres:// URL (overrides DATABASE_URL)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(fs *pflag.FlagSet, store storeFlags) (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if fs.Changed("database") {
		cfg.DatabaseURL = store.database
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// openStore opens the configured store and brings its schema up to date.
func openStore(cfg *config.Config) (*db.Pools, error) {
	pools, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.RunMigrations(pools.Write, pools.Dialect); err != nil {
		_ = pools.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return pools, nil
}
