// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/types"
)

// CodeFromError maps domain and storage errors onto gRPC codes, the common
// vocabulary of both the gRPC and the HTTP surface.
func CodeFromError(err error) codes.Code {
	if err == nil {
		return codes.OK
	}

	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Code()
	}

	switch {
	case errors.Is(err, types.ErrInvalidIdentifier):
		return codes.InvalidArgument
	case errors.Is(err, types.ErrTenantNotFound), errors.Is(err, storage.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, types.ErrTenantNotActive), errors.Is(err, types.ErrInvalidStateTransition):
		return codes.FailedPrecondition
	case errors.Is(err, storage.ErrDuplicateKey):
		return codes.AlreadyExists
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return codes.FailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	}

	return codes.Internal
}

// HTTPStatusFromError returns the HTTP status for err. A tenant that exists
// but is not active answers 412 rather than the generic 400 of FailedPrecondition.
func HTTPStatusFromError(err error) int {
	if errors.Is(err, types.ErrTenantNotActive) {
		return http.StatusPreconditionFailed
	}

	if errors.Is(err, types.ErrInvalidStateTransition) {
		return http.StatusConflict
	}

	return runtime.HTTPStatusFromCode(CodeFromError(err))
}

// GRPCError converts err into a gRPC status error, leaving status errors untouched.
func GRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(CodeFromError(err), err.Error())
}
