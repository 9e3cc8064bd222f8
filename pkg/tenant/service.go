// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

const (
	// HeaderName carries the organization id of tenant-scoped requests.
	HeaderName = "X-Organization-Id"
	// PathParam is the chi route parameter holding the organization id.
	PathParam = "organizationId"
	// QueryParam is the query string fallback for the organization id.
	QueryParam = "organizationId"
)

// ExtractOrganizationID returns the organization id addressed by r, looking
// at the header, the route parameter and the query string in that order.
// It returns an empty string when the request is not tenant-scoped.
func ExtractOrganizationID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderName)); id != "" {
		return id
	}

	if id := strings.TrimSpace(chi.URLParam(r, PathParam)); id != "" {
		return id
	}

	return strings.TrimSpace(r.URL.Query().Get(QueryParam))
}

var _ ResolverInterface = (*Resolver)(nil)

// Resolver turns an organization id into the tenant context of a request.
// It only reads the registry.
type Resolver struct {
	registry  RegistryInterface
	connector ConnectorInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Resolver) Resolve(ctx context.Context, organizationID string) (*tenancy.TenantContext, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Resolver.Resolve")
	defer span.End()

	id := strings.TrimSpace(organizationID)
	if err := tenancy.ValidateOrganizationID(id); err != nil {
		return nil, err
	}

	org, err := s.registry.FindByOrganizationID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: organization %s", types.ErrTenantNotFound, id)
		}
		return nil, fmt.Errorf("failed to resolve organization %s: %w", id, err)
	}

	if !org.IsUsable() {
		s.logger.Security().TenantAccessDenied(id, org.Status.String())
		return nil, fmt.Errorf("%w: organization %s is %s", types.ErrTenantNotActive, id, org.Status)
	}

	h, err := s.connector.Handle(org.SchemaName)
	if err != nil {
		return nil, err
	}

	return &tenancy.TenantContext{
		OrganizationID: org.ID,
		SchemaName:     org.SchemaName,
		Handle:         h,
	}, nil
}

func NewResolver(
	registry RegistryInterface,
	connector ConnectorInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Resolver {
	s := new(Resolver)

	s.registry = registry
	s.connector = connector

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
