// Package dbtest starts a throwaway Postgres for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ferdiebergado/accountkit/internal/config"
	timex "github.com/ferdiebergado/accountkit/internal/pkg/time"
	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "postgres:17-alpine"

// NewPostgres returns a migrated database running in a container that is
// terminated when the test ends.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("accountkit_test"),
		postgres.WithUsername("accountkit"),
		postgres.WithPassword("accountkit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.DB{
		Driver:       "pgx",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		PingTimeout:  timex.Duration{Duration: 10 * time.Second},
	}
	conn, err := db.Open(ctx, cfg, dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	require.NoError(t, db.MigrateUp(conn), "run migrations")

	return conn
}
