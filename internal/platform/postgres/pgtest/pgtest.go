// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pgtest starts a disposable PostgreSQL container for repository tests.
//
// Tests using it are skipped under -short and when no container runtime is
// reachable, so the unit suite stays runnable on any machine.
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/linkshelf/internal/platform/migration"
)

const image = "postgres:15-alpine"

// New starts a migrated database and returns a pool connected to it.
// The container is terminated when the test finishes.
func New(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("pgtest: skipping database test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("linkshelf_test"),
		postgres.WithUsername("linkshelf"),
		postgres.WithPassword("linkshelf"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		t.Skipf("pgtest: postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("pgtest: terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, logger))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Truncate empties the given tables so subtests start from a clean slate.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE %s", strings.Join(tables, ", ")))
	require.NoError(t, err)
}
