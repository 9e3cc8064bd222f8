// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
	"github.com/canonical/tenant-schema-service/pkg/provisioning"
)

var _ ServiceInterface = (*Service)(nil)

// Service is the administrative surface over organizations: creation through
// the provisioner, status changes and explicit schema removal.
type Service struct {
	registry    RegistryInterface
	provisioner ProvisionerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Create provisions an organization, generating a time ordered id when none
// is given. On failure a registry row left in provisioning status is removed
// and the provisioning error is returned unchanged.
func (s *Service) Create(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Create")
	defer span.End()

	if organizationID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate organization id: %w", err)
		}
		organizationID = id.String()
	}

	org, err := s.provisioner.Provision(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, types.ErrInvalidIdentifier) && !errors.Is(err, types.ErrInvalidStateTransition) {
			s.removeOrphan(ctx, organizationID)
		}
		return nil, err
	}

	s.logger.Security().AdminAction(actorFromContext(ctx), "provision", organizationID)

	return org, nil
}

// removeOrphan deletes a registry row still marked provisioning. Errors are
// logged only, the caller reports the original failure.
func (s *Service) removeOrphan(ctx context.Context, organizationID string) {
	ctx = context.WithoutCancel(ctx)

	org, err := s.registry.FindByOrganizationID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Errorf("failed to check registry after failed provisioning of %s: %v", organizationID, err)
		}
		return
	}

	if org.Status != types.StatusProvisioning {
		return
	}

	if err := s.registry.Remove(ctx, organizationID); err != nil {
		s.logger.Errorf("failed to remove registry row of %s: %v", organizationID, err)
	}
}

func (s *Service) Get(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Get")
	defer span.End()

	if err := tenancy.ValidateOrganizationID(organizationID); err != nil {
		return nil, err
	}

	org, err := s.registry.FindByOrganizationID(ctx, organizationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: organization %s", types.ErrTenantNotFound, organizationID)
	}

	return org, err
}

func (s *Service) List(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.List")
	defer span.End()

	orgs, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	if orgs == nil {
		orgs = []*types.Organization{}
	}

	return orgs, nil
}

func (s *Service) Suspend(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Suspend")
	defer span.End()

	return s.transition(ctx, organizationID, types.TransitionSuspend)
}

func (s *Service) Reactivate(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Reactivate")
	defer span.End()

	return s.transition(ctx, organizationID, types.TransitionReactivate)
}

func (s *Service) transition(ctx context.Context, organizationID string, t types.Transition) (*types.Organization, error) {
	if err := tenancy.ValidateOrganizationID(organizationID); err != nil {
		return nil, err
	}

	org, err := s.registry.Transition(ctx, organizationID, t)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: organization %s", types.ErrTenantNotFound, organizationID)
		}
		return nil, err
	}

	s.logger.Security().AdminAction(actorFromContext(ctx), string(t), organizationID)

	return org, nil
}

// Drop removes the schema of an organization with all its data and marks the
// registry row deleted. It is never triggered implicitly.
func (s *Service) Drop(ctx context.Context, organizationID string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Drop")
	defer span.End()

	org, err := s.Get(ctx, organizationID)
	if err != nil {
		return err
	}

	if err := s.provisioner.DropSchema(ctx, org.SchemaName); err != nil {
		return err
	}

	if _, err := s.registry.MarkDeleted(ctx, organizationID); err != nil {
		return err
	}

	s.logger.Security().AdminAction(actorFromContext(ctx), "drop", organizationID)

	return nil
}

// Verify reports which tables and indexes are missing from the organization schema.
func (s *Service) Verify(ctx context.Context, organizationID string) (*provisioning.Report, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Verify")
	defer span.End()

	org, err := s.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return s.provisioner.Verify(ctx, org.SchemaName)
}

func NewService(
	registry RegistryInterface,
	provisioner ProvisionerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.registry = registry
	s.provisioner = provisioner

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
