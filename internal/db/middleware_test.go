// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-schema-service/internal/logging"
)

// txRecorder records how WithTx was used and what fn returned.
type txRecorder struct {
	calls     int
	err       error
	commitErr error
}

func (f *txRecorder) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (f *txRecorder) Exec(context.Context, string, ...any) (sql.Result, error) {
	return nil, nil
}

func (f *txRecorder) WithTx(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	f.err = fn(context.WithValue(ctx, lazyTxContextKey{}, &lazyTx{}))
	if f.err == nil {
		return f.commitErr
	}
	return f.err
}

func (f *txRecorder) Ping(context.Context) error { return nil }

func (f *txRecorder) Close() {}

func TestTransactionMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		status     int
		wantTx     bool
		wantCommit bool
	}{
		{name: "read", method: http.MethodGet, status: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, status: http.StatusNoContent},
		{name: "write", method: http.MethodPost, status: http.StatusCreated, wantTx: true, wantCommit: true},
		{name: "failed write", method: http.MethodPost, status: http.StatusPreconditionFailed, wantTx: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := new(txRecorder)

			var inTx bool
			handler := TransactionMiddleware(client, logging.NewNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inTx = InTx(r.Context())
				w.WriteHeader(test.status)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(test.method, "/", nil))

			if w.Code != test.status {
				t.Fatalf("expected status %d, got %d", test.status, w.Code)
			}
			if inTx != test.wantTx || (client.calls == 1) != test.wantTx {
				t.Fatalf("expected transaction %v, got in tx %v with %d calls", test.wantTx, inTx, client.calls)
			}
			if test.wantTx && (client.err == nil) != test.wantCommit {
				t.Fatalf("expected commit %v, got err %v", test.wantCommit, client.err)
			}
		})
	}
}

// errorLogger counts error level logs.
type errorLogger struct {
	logging.LoggerInterface
	errors int
}

func (l *errorLogger) Errorf(string, ...interface{}) {
	l.errors++
}

func TestTransactionMiddlewareLogsCommitFailure(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		commitErr  error
		wantErrors int
	}{
		{name: "commit failure", status: http.StatusCreated, commitErr: errors.New("connection reset"), wantErrors: 1},
		{name: "committed", status: http.StatusCreated},
		{name: "rolled back", status: http.StatusConflict},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := &txRecorder{commitErr: test.commitErr}
			logger := &errorLogger{LoggerInterface: logging.NewNoopLogger()}

			handler := TransactionMiddleware(client, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

			if logger.errors != test.wantErrors {
				t.Fatalf("expected %d error logs, got %d", test.wantErrors, logger.errors)
			}
		})
	}
}

func TestLazyTxFinishWithoutStatements(t *testing.T) {
	lt := &lazyTx{}

	if err := lt.finish(true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := lt.finish(false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
