// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/pkg/activity"
)

//go:generate mockgen -build_flags=--mod=mod -package posts -destination ./mock_posts.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package posts -destination ./mock_activity.go -source=../activity/interfaces.go -mock_names RepositoryInterface=MockActivityRepositoryInterface

// scopedRouter serves the posts API with both repositories propagated for org_acme.
func scopedRouter(t *testing.T, repo RepositoryInterface, act activity.RepositoryInterface) http.Handler {
	t.Helper()

	logger := logging.NewNoopLogger()
	p := tenancy.NewPropagator(logger)
	_ = p.Register(RepositoryName, func(*tenancy.Handle) any { return repo })
	_ = p.Register(activity.RepositoryName, func(*tenancy.Handle) any { return act })

	h, err := tenancy.NewConnector(nil).Handle("org_acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tc := &tenancy.TenantContext{OrganizationID: "acme", SchemaName: "org_acme", Handle: h}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(p.Propagate(r.Context(), tc)))
		})
	})

	NewAPI(tenancy.NewConnector(nil).Default(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logger).RegisterEndpoints(router)

	return router
}

func TestHandleCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(*MockRepositoryInterface, *MockActivityRepositoryInterface)
		wantStatus int
	}{
		{
			name: "creates post and records activity",
			body: `{"owner_id":"u1","body":"hello","visibility":"members"}`,
			setupMocks: func(r *MockRepositoryInterface, a *MockActivityRepositoryInterface) {
				r.EXPECT().Create(gomock.Any(), &CreatePostRequest{OwnerID: "u1", Body: "hello", Visibility: "members"}).Return(
					&Post{ID: "p1", OwnerID: "u1", Body: "hello", Visibility: "members", CreatedAt: time.Now()}, nil,
				)
				a.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *activity.Entry) (*activity.Entry, error) {
						if e.Action != "post.created" || e.EntityID != "p1" || e.UserID != "u1" {
							t.Errorf("unexpected activity entry %+v", e)
						}
						return e, nil
					},
				)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid visibility",
			body:       `{"owner_id":"u1","body":"hello","visibility":"everyone"}`,
			setupMocks: func(*MockRepositoryInterface, *MockActivityRepositoryInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing body",
			body:       `{"owner_id":"u1"}`,
			setupMocks: func(*MockRepositoryInterface, *MockActivityRepositoryInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"owner_id":`,
			setupMocks: func(*MockRepositoryInterface, *MockActivityRepositoryInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "repository failure",
			body: `{"owner_id":"u1","body":"hello"}`,
			setupMocks: func(r *MockRepositoryInterface, a *MockActivityRepositoryInterface) {
				r.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepositoryInterface(ctrl)
			act := NewMockActivityRepositoryInterface(ctrl)
			test.setupMocks(repo, act)

			r := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(test.body))
			w := httptest.NewRecorder()

			scopedRouter(t, repo, act).ServeHTTP(w, r)

			if w.Code != test.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", test.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepositoryInterface(ctrl)
	repo.EXPECT().List(gomock.Any(), "u1", int64(2), int64(10)).Return([]*Post{{ID: "p1", OwnerID: "u1"}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/posts?ownerId=u1&page=2&size=10", nil)
	w := httptest.NewRecorder()

	scopedRouter(t, repo, NewMockActivityRepositoryInterface(ctrl)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data []*Post               `json:"data"`
		Meta *httpTypes.Pagination `json:"_meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data) != 1 || resp.Data[0].ID != "p1" || resp.Meta.Page != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}
