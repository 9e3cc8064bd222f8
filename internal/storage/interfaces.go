// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/tenant-schema-service/internal/types"
)

type RegistryInterface interface {
	Register(ctx context.Context, organizationID, schemaName string) (bool, error)
	MarkActive(ctx context.Context, organizationID string) (*types.Organization, error)
	Transition(ctx context.Context, organizationID string, t types.Transition) (*types.Organization, error)
	FindByOrganizationID(ctx context.Context, organizationID string) (*types.Organization, error)
	FindBySchemaName(ctx context.Context, schemaName string) (*types.Organization, error)
	List(ctx context.Context) ([]*types.Organization, error)
	MarkDeleted(ctx context.Context, organizationID string) (*types.Organization, error)
	Remove(ctx context.Context, organizationID string) error
}
