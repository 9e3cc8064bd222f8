// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

const defaultTxTimeout = 60 * time.Second

type lazyTxContextKey struct{}

// lazyTx begins its transaction on the first statement, so a request that
// never touches the database never opens one.
type lazyTx struct {
	mu sync.Mutex

	db     *sql.DB
	parent context.Context

	tx     *sql.Tx
	cancel context.CancelFunc
}

func (lt *lazyTx) get() (*sql.Tx, error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.tx != nil {
		return lt.tx, nil
	}

	// detached so that a client hanging up mid-request cannot leave the
	// transaction half applied, bounded so it cannot stay open forever
	ctx, cancel := context.WithTimeout(context.WithoutCancel(lt.parent), defaultTxTimeout)
	tx, err := lt.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		return nil, err
	}

	lt.tx = tx
	lt.cancel = cancel

	return tx, nil
}

// finish commits when commit is true and rolls back otherwise. It is a
// no-op when no statement ran.
func (lt *lazyTx) finish(commit bool) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.tx == nil {
		return nil
	}
	defer lt.cancel()

	if commit {
		return lt.tx.Commit()
	}

	if err := lt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func lazyTxFromContext(ctx context.Context) *lazyTx {
	if lt, ok := ctx.Value(lazyTxContextKey{}).(*lazyTx); ok {
		return lt
	}
	return nil
}

// InTx reports whether statements issued with ctx run inside WithTx.
func InTx(ctx context.Context) bool {
	return lazyTxFromContext(ctx) != nil
}

// WithTx runs fn with a context whose statements share one transaction,
// committed when fn returns nil and rolled back otherwise. Calls nested in
// an outer WithTx join the outer transaction.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	ctx, span := d.tracer.Start(ctx, "db.DBClient.WithTx")
	defer span.End()

	lt := &lazyTx{db: d.db, parent: ctx}

	defer func() {
		if p := recover(); p != nil {
			if rerr := lt.finish(false); rerr != nil {
				d.logger.Errorf("failed to rollback transaction: %v", rerr)
			}
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, lazyTxContextKey{}, lt)); err != nil {
		if rerr := lt.finish(false); rerr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rerr)
		}
		return err
	}

	if err := lt.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
