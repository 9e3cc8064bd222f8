// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// DBClientInterface is the connection every schema handle and the
// registry issue statements through.
type DBClientInterface interface {
	Statement(context.Context) sq.StatementBuilderType
	Exec(context.Context, string, ...any) (sql.Result, error)
	WithTx(context.Context, func(context.Context) error) error
	Ping(context.Context) error
	Close()
}
