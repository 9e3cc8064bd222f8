// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_tenant.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_logger.go -source=../../internal/logging/interfaces.go

func testHandle(t *testing.T, schema string) *tenancy.Handle {
	t.Helper()

	h, err := tenancy.NewConnector(nil).Handle(schema)
	if err != nil {
		t.Fatalf("failed to build handle: %v", err)
	}
	return h
}

func TestExtractOrganizationID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		path   string
		query  string
		want   string
	}{
		{name: "header", header: "org-1", want: "org-1"},
		{name: "path", path: "org-2", want: "org-2"},
		{name: "query", query: "org-3", want: "org-3"},
		{name: "header wins over path", header: "org-1", path: "org-2", want: "org-1"},
		{name: "path wins over query", path: "org-2", query: "org-3", want: "org-2"},
		{name: "blank header falls through", header: "   ", path: "org-2", want: "org-2"},
		{name: "trimmed", header: "  org-1 ", want: "org-1"},
		{name: "none", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			target := "/"
			if test.query != "" {
				target += "?" + QueryParam + "=" + test.query
			}

			r := httptest.NewRequest(http.MethodGet, target, nil)
			if test.header != "" {
				r.Header.Set(HeaderName, test.header)
			}

			if test.path != "" {
				rctx := chi.NewRouteContext()
				rctx.URLParams.Add(PathParam, test.path)
				r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			}

			if got := ExtractOrganizationID(r); got != test.want {
				t.Fatalf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestResolverResolve(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMocks func(*MockRegistryInterface, *MockConnectorInterface)
		wantErr    error
		wantFail   bool
		wantSchema string
	}{
		{
			name: "active organization",
			id:   "acme-corp-123",
			setupMocks: func(r *MockRegistryInterface, c *MockConnectorInterface) {
				r.EXPECT().FindByOrganizationID(gomock.Any(), "acme-corp-123").Return(
					&types.Organization{ID: "acme-corp-123", SchemaName: "org_acme_corp_123", Status: types.StatusActive}, nil,
				)
				c.EXPECT().Handle("org_acme_corp_123").Return(testHandle(t, "org_acme_corp_123"), nil)
			},
			wantSchema: "org_acme_corp_123",
		},
		{
			name:       "invalid identifier",
			id:         "acme corp",
			setupMocks: func(*MockRegistryInterface, *MockConnectorInterface) {},
			wantErr:    types.ErrInvalidIdentifier,
		},
		{
			name:       "empty identifier",
			id:         " ",
			setupMocks: func(*MockRegistryInterface, *MockConnectorInterface) {},
			wantErr:    types.ErrInvalidIdentifier,
		},
		{
			name: "unknown organization",
			id:   "ghost",
			setupMocks: func(r *MockRegistryInterface, c *MockConnectorInterface) {
				r.EXPECT().FindByOrganizationID(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)
			},
			wantErr: types.ErrTenantNotFound,
		},
		{
			name: "provisioning organization",
			id:   "new-org",
			setupMocks: func(r *MockRegistryInterface, c *MockConnectorInterface) {
				r.EXPECT().FindByOrganizationID(gomock.Any(), "new-org").Return(
					&types.Organization{ID: "new-org", SchemaName: "org_new_org", Status: types.StatusProvisioning}, nil,
				)
			},
			wantErr: types.ErrTenantNotActive,
		},
		{
			name: "suspended organization",
			id:   "old-org",
			setupMocks: func(r *MockRegistryInterface, c *MockConnectorInterface) {
				r.EXPECT().FindByOrganizationID(gomock.Any(), "old-org").Return(
					&types.Organization{ID: "old-org", SchemaName: "org_old_org", Status: types.StatusSuspended}, nil,
				)
			},
			wantErr: types.ErrTenantNotActive,
		},
		{
			name: "registry failure",
			id:   "acme",
			setupMocks: func(r *MockRegistryInterface, c *MockConnectorInterface) {
				r.EXPECT().FindByOrganizationID(gomock.Any(), "acme").Return(nil, errors.New("connection refused"))
			},
			wantFail: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			registry := NewMockRegistryInterface(ctrl)
			connector := NewMockConnectorInterface(ctrl)
			test.setupMocks(registry, connector)

			r := NewResolver(registry, connector, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			tc, err := r.Resolve(context.Background(), test.id)

			if test.wantErr != nil || test.wantFail {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				if test.wantErr != nil && !errors.Is(err, test.wantErr) {
					t.Fatalf("expected %v, got %v", test.wantErr, err)
				}
				if tc != nil {
					t.Fatalf("expected no tenant context, got %+v", tc)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if tc.OrganizationID != test.id || tc.SchemaName != test.wantSchema || tc.Handle.Schema() != test.wantSchema {
				t.Fatalf("unexpected tenant context %+v", tc)
			}
		})
	}
}

func TestResolverLogsDeniedAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewMockRegistryInterface(ctrl)
	logger := NewMockLoggerInterface(ctrl)
	security := NewMockSecurityLoggerInterface(ctrl)

	registry.EXPECT().FindByOrganizationID(gomock.Any(), "old-org").Return(
		&types.Organization{ID: "old-org", SchemaName: "org_old_org", Status: types.StatusSuspended}, nil,
	)
	logger.EXPECT().Security().Return(security)
	security.EXPECT().TenantAccessDenied("old-org", "suspended")

	r := NewResolver(registry, NewMockConnectorInterface(ctrl), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logger)

	if _, err := r.Resolve(context.Background(), "old-org"); !errors.Is(err, types.ErrTenantNotActive) {
		t.Fatalf("expected tenant not active, got %v", err)
	}
}
