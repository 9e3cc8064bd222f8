// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

const defaultPingTimeout = 5 * time.Second

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// queryRunner is the subset of *sql.DB and *sql.Tx statements are issued on.
type queryRunner interface {
	sq.BaseRunner
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

var _ DBClientInterface = (*DBClient)(nil)

// DBClient shares one pgx pool between the registry and every tenant schema.
// It never changes search_path, statements name their schema explicitly.
type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// runner returns the transaction carried by ctx, starting it on first use,
// or the pool when there is none.
func (d *DBClient) runner(ctx context.Context) queryRunner {
	lt := lazyTxFromContext(ctx)
	if lt == nil {
		return d.db
	}

	tx, err := lt.get()
	if err != nil {
		d.logger.Errorf("failed to begin transaction, using the pool: %v", err)
		return d.db
	}

	return tx
}

// Statement returns a dollar placeholder builder bound to the runner of ctx.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		RunWith(d.runner(ctx))
}

// Exec runs a raw statement, typically DDL, on the same runner Statement would use.
func (d *DBClient) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Exec")
	defer span.End()

	return d.runner(ctx).ExecContext(ctx, query, args...)
}

// Ping checks that the database answers within a short deadline.
func (d *DBClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	return d.db.PingContext(ctx)
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient opens the pool described by cfg and checks the database answers.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	if cfg.MaxConns > 0 && cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("invalid pool size: min %d is above max %d", cfg.MinConns, cfg.MaxConns)
	}

	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	if cfg.TracingEnabled {
		// otelpgx.NewTracer will use default global TracerProvider, just like our tracer struct
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	config.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
		config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	}
	if cfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		// when tracing is enabled, also collect metrics
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	d := new(DBClient)
	d.pool = pool
	d.db = stdlib.OpenDBFromPool(pool)

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	if err := d.Ping(context.Background()); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	logger.Debugf("database pool ready, max %d connections", config.MaxConns)

	return d, nil
}
