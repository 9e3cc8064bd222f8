// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/types"
)

type ResolverInterface interface {
	Resolve(ctx context.Context, organizationID string) (*tenancy.TenantContext, error)
}

// RegistryInterface is the read-only view of the registry the resolver needs.
type RegistryInterface interface {
	FindByOrganizationID(ctx context.Context, organizationID string) (*types.Organization, error)
}

type ConnectorInterface interface {
	Handle(schema string) (*tenancy.Handle, error)
}

type PropagatorInterface interface {
	Propagate(ctx context.Context, tc *tenancy.TenantContext, names ...string) context.Context
}
