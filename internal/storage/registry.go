// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

// RegistryTable lives in the default schema and is created by the goose migrations.
const RegistryTable = "organization_schemas"

var registryColumns = []string{"organization_id", "schema_name", "status", "created_at", "provisioned_at"}

var _ RegistryInterface = (*Registry)(nil)

// Registry persists the organization id to schema name mapping and the
// provisioning status of each tenant. Every write is a single statement so
// concurrent callers are serialized by the table constraints.
type Registry struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewRegistry(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Registry {
	s := new(Registry)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// Register inserts a provisioning row for the organization. An existing row
// is left untouched; the returned bool reports whether this call created it.
// A schema name already owned by another organization is ErrDuplicateKey.
func (s *Registry) Register(ctx context.Context, organizationID, schemaName string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.Register")
	defer span.End()

	// untargeted so that both unique constraints arbitrate concurrent inserts
	res, err := s.db.Statement(ctx).
		Insert(RegistryTable).
		Columns("organization_id", "schema_name", "status").
		Values(organizationID, schemaName, types.StatusProvisioning.String()).
		Suffix("ON CONFLICT DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return false, WrapDuplicateKeyError(err, fmt.Sprintf("schema %s already registered", schemaName))
		}
		return false, fmt.Errorf("failed to register organization: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 1 {
		return true, nil
	}

	if _, err := s.FindByOrganizationID(ctx, organizationID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("schema %s already registered: %w", schemaName, ErrDuplicateKey)
		}
		return false, err
	}

	return false, nil
}

// MarkActive moves a provisioning row to active and stamps provisioned_at.
func (s *Registry) MarkActive(ctx context.Context, organizationID string) (*types.Organization, error) {
	return s.Transition(ctx, organizationID, types.TransitionMarkAsProvisioned)
}

// Transition applies t as a compare-and-set on the current status, failing
// with types.ErrInvalidStateTransition when the row is not in the source status.
func (s *Registry) Transition(ctx context.Context, organizationID string, t types.Transition) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.Transition")
	defer span.End()

	from, to, err := t.Endpoints()
	if err != nil {
		return nil, err
	}

	query := s.db.Statement(ctx).
		Update(RegistryTable).
		Set("status", to.String()).
		Where(sq.Eq{
			"organization_id": organizationID,
			"status":          from.String(),
		})

	if t == types.TransitionMarkAsProvisioned {
		query = query.Set("provisioned_at", sq.Expr("COALESCE(provisioned_at, now())"))
	}

	org, err := scanOrganization(
		query.Suffix("RETURNING " + columnList()).QueryRowContext(ctx),
	)
	if err == nil {
		return org, nil
	}

	if !IsNoRows(err) {
		return nil, fmt.Errorf("failed to update organization status: %w", err)
	}

	current, err := s.FindByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: cannot %s organization %s in status %s", types.ErrInvalidStateTransition, t, organizationID, current.Status)
}

// MarkDeleted moves the row to the terminal deleted status from any status.
// The row stays as a tombstone so the organization id cannot be provisioned again.
func (s *Registry) MarkDeleted(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.MarkDeleted")
	defer span.End()

	org, err := scanOrganization(
		s.db.Statement(ctx).
			Update(RegistryTable).
			Set("status", types.StatusDeleted.String()).
			Where(sq.Eq{"organization_id": organizationID}).
			Suffix("RETURNING " + columnList()).
			QueryRowContext(ctx),
	)

	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark organization deleted: %w", err)
	}

	return org, nil
}

func (s *Registry) FindByOrganizationID(ctx context.Context, organizationID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.FindByOrganizationID")
	defer span.End()

	return s.findOne(ctx, sq.Eq{"organization_id": organizationID})
}

func (s *Registry) FindBySchemaName(ctx context.Context, schemaName string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.FindBySchemaName")
	defer span.End()

	return s.findOne(ctx, sq.Eq{"schema_name": schemaName})
}

func (s *Registry) findOne(ctx context.Context, where sq.Eq) (*types.Organization, error) {
	org, err := scanOrganization(
		s.db.Statement(ctx).
			Select(registryColumns...).
			From(RegistryTable).
			Where(where).
			QueryRowContext(ctx),
	)

	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

func (s *Registry) List(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.List")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(registryColumns...).
		From(RegistryTable).
		OrderBy("created_at ASC", "organization_id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}

// Remove deletes the registry row. A missing row is not an error.
func (s *Registry) Remove(ctx context.Context, organizationID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Registry.Remove")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete(RegistryTable).
		Where(sq.Eq{"organization_id": organizationID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove organization: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		s.logger.Debugf("organization %s was not registered, nothing to remove", organizationID)
	}

	return nil
}

type scanner interface {
	Scan(...any) error
}

func scanOrganization(row scanner) (*types.Organization, error) {
	var (
		org           types.Organization
		status        string
		provisionedAt sql.NullTime
	)

	if err := row.Scan(&org.ID, &org.SchemaName, &status, &org.CreatedAt, &provisionedAt); err != nil {
		return nil, err
	}

	s, err := types.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	org.Status = s

	if provisionedAt.Valid {
		t := provisionedAt.Time
		org.ProvisionedAt = &t
	}

	return &org, nil
}

func columnList() string {
	return strings.Join(registryColumns, ", ")
}
