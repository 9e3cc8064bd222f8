// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
)

// TenantContext identifies the tenant of one request and the handle its
// data-access components must use. It is created per request and never
// mutated afterwards.
type TenantContext struct {
	OrganizationID string
	SchemaName     string
	Handle         *Handle
}

type tenantContextKey struct{}

// WithTenant returns a derived context carrying tc.
func WithTenant(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tc)
}

// FromContext returns the tenant context of the current request, if any.
func FromContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey{}).(*TenantContext)
	if !ok || tc == nil {
		return nil, false
	}
	return tc, true
}

// OrganizationIDFromContext returns the organization id of the current request, if any.
func OrganizationIDFromContext(ctx context.Context) (string, bool) {
	tc, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return tc.OrganizationID, true
}

// HandleFromContext returns the tenant handle of the current request, or
// fallback when the request is tenant-agnostic.
func HandleFromContext(ctx context.Context, fallback *Handle) *Handle {
	if tc, ok := FromContext(ctx); ok && tc.Handle != nil {
		return tc.Handle
	}
	return fallback
}
