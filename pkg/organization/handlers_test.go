// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

func newRouter(svc ServiceInterface, scoped ...func(chi.Router)) http.Handler {
	router := chi.NewRouter()
	NewAPI(svc, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(router, scoped...)
	return router
}

func TestAPI(t *testing.T) {
	active := &types.Organization{ID: "acme", SchemaName: "org_acme", Status: types.StatusActive}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMocks func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name:   "create with id",
			method: http.MethodPost,
			path:   "/api/v0/organizations",
			body:   `{"id":"acme"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Create(gomock.Any(), "acme").Return(active, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "create without body",
			method: http.MethodPost,
			path:   "/api/v0/organizations",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Create(gomock.Any(), "").Return(active, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "create with invalid id",
			method:     http.MethodPost,
			path:       "/api/v0/organizations",
			body:       `{"id":"acme corp"}`,
			setupMocks: func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "create on suspended organization",
			method: http.MethodPost,
			path:   "/api/v0/organizations",
			body:   `{"id":"acme"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Create(gomock.Any(), "acme").Return(nil, types.NewProvisioningFailedError("acme", "check_registry", types.ErrInvalidStateTransition))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/v0/organizations",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().List(gomock.Any()).Return([]*types.Organization{active}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/api/v0/organizations/acme",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Get(gomock.Any(), "acme").Return(active, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get unknown",
			method: http.MethodGet,
			path:   "/api/v0/organizations/ghost",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Get(gomock.Any(), "ghost").Return(nil, fmt.Errorf("%w: organization ghost", types.ErrTenantNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "suspend",
			method: http.MethodPost,
			path:   "/api/v0/organizations/acme/suspend",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Suspend(gomock.Any(), "acme").Return(&types.Organization{ID: "acme", Status: types.StatusSuspended}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "reactivate active organization",
			method: http.MethodPost,
			path:   "/api/v0/organizations/acme/reactivate",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Reactivate(gomock.Any(), "acme").Return(nil, types.ErrInvalidStateTransition)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "drop schema",
			method: http.MethodDelete,
			path:   "/api/v0/organizations/acme/schema",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Drop(gomock.Any(), "acme").DoAndReturn(func(ctx context.Context, _ string) error {
					if !strings.HasPrefix(actorFromContext(ctx), "http:") {
						t.Errorf("expected the http actor, got %s", actorFromContext(ctx))
					}
					return nil
				})
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockServiceInterface(ctrl)
			test.setupMocks(svc)

			r := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			w := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", test.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPIScopedRoutesShareParameter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var seen string
	scoped := func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Scoped", "1")
				next.ServeHTTP(w, r)
			})
		})
		r.Get("/posts", func(w http.ResponseWriter, r *http.Request) {
			seen = chi.URLParam(r, "organizationId")
		})
	}

	svc := NewMockServiceInterface(ctrl)
	svc.EXPECT().Suspend(gomock.Any(), "acme").Return(&types.Organization{ID: "acme"}, nil)

	router := newRouter(svc, scoped)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/organizations/acme/posts", nil))

	if seen != "acme" {
		t.Fatalf("expected organizationId acme in scoped route, got %q", seen)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/organizations/acme/suspend", nil))

	if w.Header().Get("X-Scoped") != "" {
		t.Fatalf("scoped middleware must not run on organization routes")
	}
}
