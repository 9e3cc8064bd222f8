// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

//go:build integration

// Package dbtest starts a disposable PostgreSQL for integration tests and
// applies the registry migrations to it.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/migrations"
)

// NewClient returns a DBClient connected to a fresh migrated database. The
// container is terminated when the test finishes.
func NewClient(t *testing.T, ctx context.Context) *db.DBClient {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	migrate(t, ctx, dsn)

	client, err := db.NewDBClient(
		db.Config{DSN: dsn, MaxConns: 20, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: 30 * time.Minute},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("integration"),
		logging.NewNoopLogger(),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func migrate(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()

	config, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)

	conn := stdlib.OpenDB(*config)
	defer conn.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, conn, migrations.EmbedMigrations, goose.WithLogger(goose.NopLogger()))
	require.NoError(t, err)

	_, err = provider.Up(ctx)
	require.NoError(t, err)
}
