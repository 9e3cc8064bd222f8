// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

const (
	StepDeriveSchemaName = "derive_schema_name"
	StepCheckRegistry    = "check_registry"
	StepCreateSchema     = "create_schema"
	StepRegister         = "register"
	StepCreateTables     = "create_tables"
	StepCreateIndexes    = "create_indexes"
	StepMarkActive       = "mark_active"

	defaultTimeout        = 2 * time.Minute
	defaultCleanupTimeout = 30 * time.Second
)

type Config struct {
	// Timeout bounds a full provisioning run, on top of any caller deadline.
	Timeout time.Duration
	// CleanupTimeout bounds the compensating actions after a failure.
	CleanupTimeout time.Duration
}

// Report describes which parts of the fixed tenant layout exist in a schema.
type Report struct {
	SchemaName     string   `json:"schema_name"`
	SchemaExists   bool     `json:"schema_exists"`
	MissingTables  []string `json:"missing_tables"`
	MissingIndexes []string `json:"missing_indexes"`
}

// Complete reports whether the schema holds every table and index.
func (r *Report) Complete() bool {
	return r.SchemaExists && len(r.MissingTables) == 0 && len(r.MissingIndexes) == 0
}

var _ ProvisionerInterface = (*Provisioner)(nil)

type Provisioner struct {
	db       ExecutorInterface
	catalog  CatalogInterface
	registry RegistryInterface

	timeout        time.Duration
	cleanupTimeout time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Provision creates the schema, registry row, tables and indexes of an
// organization and marks it active. Every statement is idempotent, so a run
// interrupted while the organization is still provisioning can be repeated.
// Running it for an active organization is a no-op.
//
// On failure everything this run created is undone in reverse order and the
// original error is returned as a *types.ProvisioningFailedError.
func (p *Provisioner) Provision(ctx context.Context, organizationID string) (org *types.Organization, err error) {
	ctx, span := p.tracer.Start(ctx, "provisioning.Provisioner.Provision")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	defer p.observe(time.Now(), &err)

	schemaName, err := tenancy.DeriveSchemaName(organizationID)
	if err != nil {
		return nil, types.NewProvisioningFailedError(organizationID, StepDeriveSchemaName, err)
	}

	existing, err := p.registry.FindByOrganizationID(ctx, organizationID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, types.NewProvisioningFailedError(organizationID, StepCheckRegistry, err)
	case existing.Status == types.StatusActive:
		p.logger.Debugf("organization %s already provisioned in schema %s", organizationID, existing.SchemaName)
		return existing, nil
	case existing.Status != types.StatusProvisioning:
		return nil, types.NewProvisioningFailedError(
			organizationID,
			StepCheckRegistry,
			fmt.Errorf("%w: organization is %s", types.ErrInvalidStateTransition, existing.Status),
		)
	case existing.SchemaName != schemaName:
		return nil, types.NewProvisioningFailedError(
			organizationID,
			StepCheckRegistry,
			fmt.Errorf("%w: registered schema %s does not match derived schema %s", types.ErrInvalidIdentifier, existing.SchemaName, schemaName),
		)
	}

	comp := newCompensations(organizationID, p.logger)
	fail := func(step string, cause error) (*types.Organization, error) {
		p.logger.Errorf("provisioning organization %s failed at %s: %v", organizationID, step, cause)
		p.compensate(ctx, comp)
		return nil, types.NewProvisioningFailedError(organizationID, step, cause)
	}

	quoted := tenancy.QuoteIdentifier(schemaName)

	existed, err := p.catalog.SchemaExists(ctx, schemaName)
	if err != nil {
		return fail(StepCreateSchema, err)
	}
	if _, err := p.db.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoted); err != nil {
		return fail(StepCreateSchema, err)
	}

	created, err := p.registry.Register(ctx, organizationID, schemaName)
	if err != nil {
		if !existed {
			p.logger.Warnf("leaving schema %s in place, its owner is unknown after a failed registration", schemaName)
		}
		return fail(StepRegister, err)
	}
	// the schema is only ours to drop when this run also owns the registry row
	if created && !existed {
		comp.push(StepCreateSchema, func(ctx context.Context) error {
			return p.dropSchema(ctx, schemaName)
		})
	}
	if created {
		comp.push(StepRegister, func(ctx context.Context) error {
			return p.registry.Remove(ctx, organizationID)
		})
	}

	for _, t := range tables {
		if _, err := p.db.Exec(ctx, t.render(quoted)); err != nil {
			return fail(StepCreateTables, fmt.Errorf("table %s: %w", t.name, err))
		}
	}

	for _, i := range indexes {
		if _, err := p.db.Exec(ctx, i.render(quoted)); err != nil {
			return fail(StepCreateIndexes, fmt.Errorf("index %s: %w", i.name, err))
		}
	}

	org, err = p.registry.MarkActive(ctx, organizationID)
	if err != nil {
		if errors.Is(err, types.ErrInvalidStateTransition) {
			// a concurrent run may have completed first
			if current, ferr := p.registry.FindByOrganizationID(ctx, organizationID); ferr == nil && current.Status == types.StatusActive {
				return current, nil
			}
		}
		return fail(StepMarkActive, err)
	}

	p.logger.Infof("provisioned organization %s in schema %s", organizationID, schemaName)

	return org, nil
}

// compensate runs the undo stack on a context detached from the caller, so
// an expired request deadline does not prevent the cleanup.
func (p *Provisioner) compensate(ctx context.Context, comp *compensations) {
	if comp.len() == 0 {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cleanupTimeout)
	defer cancel()

	comp.rollback(cleanupCtx)
}

func (p *Provisioner) observe(start time.Time, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "failure"
	}

	if merr := p.monitor.SetProvisioningDuration(map[string]string{"outcome": outcome}, time.Since(start).Seconds()); merr != nil {
		p.logger.Debugf("error setting provisioning metric: %v", merr)
	}
}

// DropSchema removes a tenant schema and everything in it. It is never called
// by Provision on success paths and must be invoked explicitly.
func (p *Provisioner) DropSchema(ctx context.Context, schemaName string) error {
	ctx, span := p.tracer.Start(ctx, "provisioning.Provisioner.DropSchema")
	defer span.End()

	return p.dropSchema(ctx, schemaName)
}

func (p *Provisioner) dropSchema(ctx context.Context, schemaName string) error {
	if err := tenancy.ValidateSchemaName(schemaName); err != nil {
		return err
	}
	if schemaName == tenancy.DefaultSchema {
		return fmt.Errorf("%w: refusing to drop the %s schema", types.ErrInvalidIdentifier, tenancy.DefaultSchema)
	}

	if _, err := p.db.Exec(ctx, "DROP SCHEMA IF EXISTS "+tenancy.QuoteIdentifier(schemaName)+" CASCADE"); err != nil {
		return fmt.Errorf("failed to drop schema %s: %w", schemaName, err)
	}

	p.logger.Infof("dropped schema %s", schemaName)

	return nil
}

// Verify compares a schema against the fixed tenant layout.
func (p *Provisioner) Verify(ctx context.Context, schemaName string) (*Report, error) {
	ctx, span := p.tracer.Start(ctx, "provisioning.Provisioner.Verify")
	defer span.End()

	if err := tenancy.ValidateSchemaName(schemaName); err != nil {
		return nil, err
	}

	r := &Report{SchemaName: schemaName, MissingTables: []string{}, MissingIndexes: []string{}}

	exists, err := p.catalog.SchemaExists(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	r.SchemaExists = exists
	if !exists {
		r.MissingTables = TableNames()
		r.MissingIndexes = IndexNames()
		return r, nil
	}

	present, err := p.catalog.ListTables(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	r.MissingTables = missing(TableNames(), present)

	present, err = p.catalog.ListIndexes(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	r.MissingIndexes = missing(IndexNames(), present)

	return r, nil
}

func missing(expected, present []string) []string {
	m := []string{}
	for _, e := range expected {
		if !slices.Contains(present, e) {
			m = append(m, e)
		}
	}
	return m
}

func NewProvisioner(
	cfg Config,
	executor ExecutorInterface,
	catalog CatalogInterface,
	registry RegistryInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Provisioner {
	p := new(Provisioner)

	p.db = executor
	p.catalog = catalog
	p.registry = registry

	p.timeout = cfg.Timeout
	if p.timeout <= 0 {
		p.timeout = defaultTimeout
	}
	p.cleanupTimeout = cfg.CleanupTimeout
	if p.cleanupTimeout <= 0 {
		p.cleanupTimeout = defaultCleanupTimeout
	}

	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p
}
