// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package posts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/validation"
	"github.com/canonical/tenant-schema-service/pkg/activity"
)

type API struct {
	fallback  *tenancy.Handle
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the posts routes on a tenant-scoped router.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/posts", a.handleList)
	mux.Post("/posts", a.handleCreate)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "posts.API.handleList")
	defer span.End()

	page, size := activity.PageParams(r)

	posts, err := a.repository(ctx).List(ctx, r.URL.Query().Get("ownerId"), page, size)
	if err != nil {
		a.logger.Errorf("failed to list posts: %v", err)
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "List of posts", posts, &httpTypes.Pagination{Page: page, PageSize: size})
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "posts.API.handleCreate")
	defer span.End()

	req := new(CreatePostRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httpTypes.WriteBadRequest(w, "failed to parse request body")
		return
	}

	if err := a.validator.Struct(req); err != nil {
		httpTypes.WriteBadRequest(w, err.Error())
		return
	}

	post, err := a.repository(ctx).Create(ctx, req)
	if err != nil {
		a.logger.Errorf("failed to create post: %v", err)
		httpTypes.WriteError(w, err)
		return
	}

	entry := &activity.Entry{
		UserID:     post.OwnerID,
		EntityType: "post",
		EntityID:   post.ID,
		Action:     "post.created",
		Metadata:   map[string]any{"visibility": post.Visibility},
	}
	if _, err := a.activity(ctx).Record(ctx, entry); err != nil {
		a.logger.Errorf("failed to record activity for post %s: %v", post.ID, err)
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusCreated, "Created post", post, nil)
}

func (a *API) repository(ctx context.Context) RepositoryInterface {
	if repo, ok := tenancy.Lookup[RepositoryInterface](ctx, RepositoryName); ok {
		return repo
	}

	return NewRepository(tenancy.HandleFromContext(ctx, a.fallback), a.tracer)
}

func (a *API) activity(ctx context.Context) activity.RepositoryInterface {
	if repo, ok := tenancy.Lookup[activity.RepositoryInterface](ctx, activity.RepositoryName); ok {
		return repo
	}

	return activity.NewRepository(tenancy.HandleFromContext(ctx, a.fallback), a.tracer)
}

func NewAPI(fallback *tenancy.Handle, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.fallback = fallback
	a.validator = validation.NewValidator()

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
