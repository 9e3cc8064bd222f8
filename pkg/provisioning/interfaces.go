// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"database/sql"

	"github.com/canonical/tenant-schema-service/internal/types"
)

type ProvisionerInterface interface {
	Provision(ctx context.Context, organizationID string) (*types.Organization, error)
	DropSchema(ctx context.Context, schemaName string) error
	Verify(ctx context.Context, schemaName string) (*Report, error)
}

// RegistryInterface is the subset of the tenant registry used while provisioning.
type RegistryInterface interface {
	Register(ctx context.Context, organizationID, schemaName string) (bool, error)
	MarkActive(ctx context.Context, organizationID string) (*types.Organization, error)
	FindByOrganizationID(ctx context.Context, organizationID string) (*types.Organization, error)
	Remove(ctx context.Context, organizationID string) error
}

type ExecutorInterface interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CatalogInterface inspects the database catalog.
type CatalogInterface interface {
	SchemaExists(ctx context.Context, schemaName string) (bool, error)
	ListTables(ctx context.Context, schemaName string) ([]string, error)
	ListIndexes(ctx context.Context, schemaName string) ([]string, error)
}
