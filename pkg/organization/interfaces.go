// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"

	"github.com/canonical/tenant-schema-service/internal/types"
	"github.com/canonical/tenant-schema-service/pkg/provisioning"
)

type ServiceInterface interface {
	Create(ctx context.Context, organizationID string) (*types.Organization, error)
	Get(ctx context.Context, organizationID string) (*types.Organization, error)
	List(ctx context.Context) ([]*types.Organization, error)
	Suspend(ctx context.Context, organizationID string) (*types.Organization, error)
	Reactivate(ctx context.Context, organizationID string) (*types.Organization, error)
	Drop(ctx context.Context, organizationID string) error
	Verify(ctx context.Context, organizationID string) (*provisioning.Report, error)
}

type RegistryInterface interface {
	FindByOrganizationID(ctx context.Context, organizationID string) (*types.Organization, error)
	List(ctx context.Context) ([]*types.Organization, error)
	Transition(ctx context.Context, organizationID string, t types.Transition) (*types.Organization, error)
	MarkDeleted(ctx context.Context, organizationID string) (*types.Organization, error)
	Remove(ctx context.Context, organizationID string) error
}

type ProvisionerInterface interface {
	Provision(ctx context.Context, organizationID string) (*types.Organization, error)
	DropSchema(ctx context.Context, schemaName string) error
	Verify(ctx context.Context, schemaName string) (*provisioning.Report, error)
}
