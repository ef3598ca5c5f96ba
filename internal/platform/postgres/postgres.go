// Package postgres opens the database/sql pool used by the Postgres table source.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"njgeo/internal/platform/config"
)

// ErrNotConfigured is returned when no DATABASE_URL is set.
var ErrNotConfigured = errors.New("postgres: url not configured")

// Open creates a pool against cfg.URL and verifies it with a ping.
func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
