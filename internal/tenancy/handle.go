// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-schema-service/internal/db"
)

// Handle is a data-access handle bound to exactly one schema. It never
// changes after construction, so it can be shared by every component that
// runs within the request which resolved it.
type Handle struct {
	db     db.DBClientInterface
	schema string
}

// Schema returns the schema every table reference of this handle points to.
func (h *Handle) Schema() string {
	return h.schema
}

// Table returns the quoted, schema qualified name of table.
func (h *Handle) Table(table string) string {
	return QuoteIdentifier(h.schema, table)
}

// Statement returns a statement builder running on the request transaction
// when one is present in ctx.
func (h *Handle) Statement(ctx context.Context) sq.StatementBuilderType {
	return h.db.Statement(ctx)
}

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return h.db.Exec(ctx, query, args...)
}

// Connector hands out handles bound to validated schema names.
type Connector struct {
	db db.DBClientInterface
}

// Handle returns a handle bound to schema.
func (c *Connector) Handle(schema string) (*Handle, error) {
	if err := ValidateSchemaName(schema); err != nil {
		return nil, err
	}

	return &Handle{db: c.db, schema: schema}, nil
}

// Default returns the handle used when no tenant context is present.
func (c *Connector) Default() *Handle {
	return &Handle{db: c.db, schema: DefaultSchema}
}

func NewConnector(c db.DBClientInterface) *Connector {
	return &Connector{db: c}
}
