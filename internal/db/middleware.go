// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/canonical/tenant-schema-service/internal/logging"
)

var errRequestFailed = errors.New("request failed")

// TransactionMiddleware runs every write request in one transaction, so the
// posts and activity rows of a tenant request are committed together. The
// transaction is rolled back when the handler answers with a status >= 400.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.status >= http.StatusBadRequest {
					return fmt.Errorf("%w with status %d", errRequestFailed, rw.status)
				}

				return nil
			})

			switch {
			case err == nil:
			case errors.Is(err, errRequestFailed):
				logger.Debugf("transaction for %s %s rolled back: %v", r.Method, r.URL.Path, err)
			default:
				// the response is already written, the client is not told
				logger.Errorf("transaction for %s %s failed after status %d: %v", r.Method, r.URL.Path, rw.status, err)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
