// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package provisioning -destination ./mock_provisioning.go -source=./interfaces.go

const (
	testOrganizationID = "acme-corp-123"
	testSchemaName     = "org_acme_corp_123"
)

type fixture struct {
	executor *MockExecutorInterface
	catalog  *MockCatalogInterface
	registry *MockRegistryInterface

	statements []string
}

func newFixture(ctrl *gomock.Controller) *fixture {
	return &fixture{
		executor: NewMockExecutorInterface(ctrl),
		catalog:  NewMockCatalogInterface(ctrl),
		registry: NewMockRegistryInterface(ctrl),
	}
}

func (f *fixture) provisioner() *Provisioner {
	return NewProvisioner(
		Config{Timeout: time.Minute, CleanupTimeout: time.Second},
		f.executor,
		f.catalog,
		f.registry,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	)
}

// recordExec records every statement and fails the one for which failOn returns true.
func (f *fixture) recordExec(failOn func(string) bool) func(context.Context, string, ...any) (sql.Result, error) {
	return func(_ context.Context, query string, _ ...any) (sql.Result, error) {
		f.statements = append(f.statements, query)
		if failOn != nil && failOn(query) {
			return nil, errors.New("boom")
		}
		return driver.RowsAffected(0), nil
	}
}

func activeOrganization() *types.Organization {
	now := time.Now()
	return &types.Organization{
		ID:            testOrganizationID,
		SchemaName:    testSchemaName,
		Status:        types.StatusActive,
		CreatedAt:     now,
		ProvisionedAt: &now,
	}
}

func TestProvisionNewOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(nil, storage.ErrNotFound)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(false, nil)
	f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(nil)).Times(1 + len(tables) + len(indexes))
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(true, nil)
	f.registry.EXPECT().MarkActive(gomock.Any(), testOrganizationID).Return(activeOrganization(), nil)

	org, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if org.Status != types.StatusActive || org.SchemaName != testSchemaName {
		t.Fatalf("unexpected organization %+v", org)
	}

	if f.statements[0] != `CREATE SCHEMA IF NOT EXISTS "org_acme_corp_123"` {
		t.Fatalf("expected schema creation first, got %q", f.statements[0])
	}

	for i, s := range tables {
		stmt := f.statements[1+i]
		if !strings.Contains(stmt, `"org_acme_corp_123".`) {
			t.Errorf("table %s not qualified with the tenant schema: %q", s.name, stmt)
		}
		if !strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS") {
			t.Errorf("table %s is not created idempotently: %q", s.name, stmt)
		}
	}

	for i, s := range indexes {
		stmt := f.statements[1+len(tables)+i]
		if !strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS "+s.name) {
			t.Errorf("expected index %s, got %q", s.name, stmt)
		}
	}
}

func TestProvisionCompensatesOnTableFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	failOn := func(q string) bool { return strings.Contains(q, ".post_likes") && strings.HasPrefix(q, "CREATE TABLE") }

	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(nil, storage.ErrNotFound)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(false, nil)
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(true, nil)

	gomock.InOrder(
		f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(failOn)).Times(4),
		f.registry.EXPECT().Remove(gomock.Any(), testOrganizationID).Return(nil),
		f.executor.EXPECT().Exec(gomock.Any(), `DROP SCHEMA IF EXISTS "org_acme_corp_123" CASCADE`).Return(driver.RowsAffected(0), nil),
	)

	org, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	if org != nil {
		t.Fatalf("expected no organization, got %+v", org)
	}

	if !errors.Is(err, types.ErrProvisioningFailed) {
		t.Fatalf("expected provisioning failure, got %v", err)
	}

	var pErr *types.ProvisioningFailedError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected a ProvisioningFailedError, got %T", err)
	}

	if pErr.Step != StepCreateTables {
		t.Fatalf("expected step %s, got %s", StepCreateTables, pErr.Step)
	}

	if !strings.Contains(pErr.Cause.Error(), "boom") || !strings.Contains(pErr.Cause.Error(), "post_likes") {
		t.Fatalf("expected the original error as cause, got %v", pErr.Cause)
	}
}

func TestProvisionCompensationSurvivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checkCtx := func(ctx context.Context) {
		if ctx.Err() != nil {
			t.Errorf("compensation ran on a cancelled context: %v", ctx.Err())
		}
	}

	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(nil, storage.ErrNotFound)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(false, nil)
	f.executor.EXPECT().Exec(gomock.Any(), `CREATE SCHEMA IF NOT EXISTS "org_acme_corp_123"`).Return(driver.RowsAffected(0), nil)
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(true, nil)

	gomock.InOrder(
		f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string, ...any) (sql.Result, error) {
				cancel()
				return nil, context.Canceled
			},
		),
		f.registry.EXPECT().Remove(gomock.Any(), testOrganizationID).DoAndReturn(
			func(ctx context.Context, _ string) error {
				checkCtx(ctx)
				return nil
			},
		),
		f.executor.EXPECT().Exec(gomock.Any(), `DROP SCHEMA IF EXISTS "org_acme_corp_123" CASCADE`).DoAndReturn(
			func(ctx context.Context, _ string, _ ...any) (sql.Result, error) {
				checkCtx(ctx)
				return driver.RowsAffected(0), nil
			},
		),
	)

	_, err := f.provisioner().Provision(ctx, testOrganizationID)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancellation as cause, got %v", err)
	}
}

func TestProvisionSharedSchemaOwnedByOtherOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	// ACME and acme derive the same schema; the other organization holds the registry row
	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), "ACME").Return(nil, storage.ErrNotFound)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), "org_acme").Return(false, nil)
	f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(nil)).AnyTimes()
	f.registry.EXPECT().Register(gomock.Any(), "ACME", "org_acme").Return(false, storage.ErrDuplicateKey)
	f.registry.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.provisioner().Provision(context.Background(), "ACME")

	var pErr *types.ProvisioningFailedError
	if !errors.As(err, &pErr) || pErr.Step != StepRegister {
		t.Fatalf("expected failure at %s, got %v", StepRegister, err)
	}

	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected the duplicate key as cause, got %v", err)
	}

	for _, s := range f.statements {
		if strings.HasPrefix(s, "DROP SCHEMA") {
			t.Fatalf("schema registered to another organization was dropped: %q", s)
		}
	}
}

func TestProvisionRerunKeepsPreexistingObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	provisioning := &types.Organization{ID: testOrganizationID, SchemaName: testSchemaName, Status: types.StatusProvisioning}

	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(provisioning, nil)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(true, nil)
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(false, nil)

	failOn := func(q string) bool { return strings.Contains(q, "activity_logs_action_created_idx") }
	f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(failOn)).Times(1 + len(tables) + len(indexes))
	f.registry.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	var pErr *types.ProvisioningFailedError
	if !errors.As(err, &pErr) || pErr.Step != StepCreateIndexes {
		t.Fatalf("expected failure at %s, got %v", StepCreateIndexes, err)
	}

	for _, s := range f.statements {
		if strings.HasPrefix(s, "DROP SCHEMA") {
			t.Fatalf("schema owned by an earlier run must not be dropped")
		}
	}
}

func TestProvisionConcurrentRegistrationOwnsSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(nil, storage.ErrNotFound)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(false, nil)
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(false, nil)

	failOn := func(q string) bool { return strings.Contains(q, ".messages") && strings.HasPrefix(q, "CREATE TABLE") }
	f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(failOn)).Times(10)

	_, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	if !errors.Is(err, types.ErrProvisioningFailed) {
		t.Fatalf("expected provisioning failure, got %v", err)
	}
}

func TestProvisionActiveOrganizationIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	active := activeOrganization()
	f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(active, nil)

	org, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if org != active {
		t.Fatalf("expected the registered organization to be returned")
	}
}

func TestProvisionRejectsUnusableStatus(t *testing.T) {
	for _, s := range []types.Status{types.StatusSuspended, types.StatusDeleted} {
		t.Run(s.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)

			f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(
				&types.Organization{ID: testOrganizationID, SchemaName: testSchemaName, Status: s}, nil,
			)

			_, err := f.provisioner().Provision(context.Background(), testOrganizationID)

			if !errors.Is(err, types.ErrInvalidStateTransition) {
				t.Fatalf("expected invalid state transition, got %v", err)
			}
		})
	}
}

func TestProvisionInvalidOrganizationID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	_, err := f.provisioner().Provision(context.Background(), "acme corp; drop")

	var pErr *types.ProvisioningFailedError
	if !errors.As(err, &pErr) || pErr.Step != StepDeriveSchemaName {
		t.Fatalf("expected failure at %s, got %v", StepDeriveSchemaName, err)
	}

	if !errors.Is(err, types.ErrInvalidIdentifier) {
		t.Fatalf("expected invalid identifier, got %v", err)
	}
}

func TestProvisionMarkActiveRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	gomock.InOrder(
		f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(nil, storage.ErrNotFound),
		f.registry.EXPECT().FindByOrganizationID(gomock.Any(), testOrganizationID).Return(activeOrganization(), nil),
	)
	f.catalog.EXPECT().SchemaExists(gomock.Any(), testSchemaName).Return(false, nil)
	f.executor.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(f.recordExec(nil)).Times(1 + len(tables) + len(indexes))
	f.registry.EXPECT().Register(gomock.Any(), testOrganizationID, testSchemaName).Return(false, nil)
	f.registry.EXPECT().MarkActive(gomock.Any(), testOrganizationID).Return(nil, types.ErrInvalidStateTransition)

	org, err := f.provisioner().Provision(context.Background(), testOrganizationID)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if org.Status != types.StatusActive {
		t.Fatalf("expected active organization, got %s", org.Status)
	}
}

func TestDropSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		setup   func(*fixture)
		wantErr error
	}{
		{
			name:   "drops tenant schema",
			schema: "org_a",
			setup: func(f *fixture) {
				f.executor.EXPECT().Exec(gomock.Any(), `DROP SCHEMA IF EXISTS "org_a" CASCADE`).Return(driver.RowsAffected(0), nil)
			},
		},
		{
			name:    "refuses the default schema",
			schema:  "public",
			setup:   func(*fixture) {},
			wantErr: types.ErrInvalidIdentifier,
		},
		{
			name:    "rejects invalid name",
			schema:  `org_a"; drop`,
			setup:   func(*fixture) {},
			wantErr: types.ErrInvalidIdentifier,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			test.setup(f)

			err := f.provisioner().DropSchema(context.Background(), test.schema)

			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	t.Run("missing schema", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.catalog.EXPECT().SchemaExists(gomock.Any(), "org_a").Return(false, nil)

		r, err := f.provisioner().Verify(context.Background(), "org_a")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if r.Complete() || len(r.MissingTables) != len(tables) || len(r.MissingIndexes) != len(indexes) {
			t.Fatalf("unexpected report %+v", r)
		}
	})

	t.Run("partial layout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.catalog.EXPECT().SchemaExists(gomock.Any(), "org_a").Return(true, nil)
		f.catalog.EXPECT().ListTables(gomock.Any(), "org_a").Return(TableNames()[:len(tables)-1], nil)
		f.catalog.EXPECT().ListIndexes(gomock.Any(), "org_a").Return(append(IndexNames(), "posts_pkey"), nil)

		r, err := f.provisioner().Verify(context.Background(), "org_a")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(r.MissingTables) != 1 || r.MissingTables[0] != "activity_logs" {
			t.Fatalf("expected activity_logs to be missing, got %v", r.MissingTables)
		}

		if len(r.MissingIndexes) != 0 {
			t.Fatalf("expected no missing index, got %v", r.MissingIndexes)
		}
	})

	t.Run("complete layout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.catalog.EXPECT().SchemaExists(gomock.Any(), "org_a").Return(true, nil)
		f.catalog.EXPECT().ListTables(gomock.Any(), "org_a").Return(TableNames(), nil)
		f.catalog.EXPECT().ListIndexes(gomock.Any(), "org_a").Return(IndexNames(), nil)

		r, err := f.provisioner().Verify(context.Background(), "org_a")

		if err != nil || !r.Complete() {
			t.Fatalf("expected a complete report, got %+v, %v", r, err)
		}
	})
}
