// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

var _ CatalogInterface = (*Catalog)(nil)

// Catalog reads schema, table and index metadata from pg_catalog.
type Catalog struct {
	db     db.DBClientInterface
	tracer tracing.TracingInterface
}

func (c *Catalog) SchemaExists(ctx context.Context, schemaName string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "provisioning.Catalog.SchemaExists")
	defer span.End()

	var name string
	err := c.db.Statement(ctx).
		Select("nspname").
		From("pg_catalog.pg_namespace").
		Where(sq.Eq{"nspname": schemaName}).
		QueryRowContext(ctx).
		Scan(&name)

	if err != nil {
		if storage.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up schema %s: %w", schemaName, err)
	}

	return true, nil
}

func (c *Catalog) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "provisioning.Catalog.ListTables")
	defer span.End()

	return c.names(ctx, "tablename", "pg_catalog.pg_tables", schemaName)
}

func (c *Catalog) ListIndexes(ctx context.Context, schemaName string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "provisioning.Catalog.ListIndexes")
	defer span.End()

	return c.names(ctx, "indexname", "pg_catalog.pg_indexes", schemaName)
}

func (c *Catalog) names(ctx context.Context, column, relation, schemaName string) ([]string, error) {
	rows, err := c.db.Statement(ctx).
		Select(column).
		From(relation).
		Where(sq.Eq{"schemaname": schemaName}).
		OrderBy(column).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", relation, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		names = append(names, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return names, nil
}

func NewCatalog(c db.DBClientInterface, tracer tracing.TracingInterface) *Catalog {
	return &Catalog{db: c, tracer: tracer}
}
