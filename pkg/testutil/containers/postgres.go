//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"njgeo/internal/platform/config"
	"njgeo/internal/platform/postgres"
)

// PostgresContainer is a throwaway Postgres opened through the service pool constructor.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("njgeo"),
		tcpostgres.WithUsername("njgeo"),
		tcpostgres.WithPassword("njgeo"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := postgres.Open(ctx, config.PostgresConfig{URL: url, MaxOpenConns: 4})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}

	return &PostgresContainer{Container: container, URL: url, DB: db}
}

// Exec runs each statement in order, stopping at the first failure.
func (p *PostgresContainer) Exec(ctx context.Context, statements ...string) error {
	for _, stmt := range statements {
		if _, err := p.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}
