// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

type API struct {
	fallback *tenancy.Handle

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the activity routes on a tenant-scoped router.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/activity", a.handleList)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "activity.API.handleList")
	defer span.End()

	page, size := PageParams(r)

	entries, err := a.repository(ctx).List(ctx, r.URL.Query().Get("userId"), page, size)
	if err != nil {
		a.logger.Errorf("failed to list activity: %v", err)
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "List of activity entries", entries, &httpTypes.Pagination{Page: page, PageSize: size})
}

// repository returns the request-scoped repository, or one bound to the
// request handle when the route was not wired through the propagator.
func (a *API) repository(ctx context.Context) RepositoryInterface {
	if repo, ok := tenancy.Lookup[RepositoryInterface](ctx, RepositoryName); ok {
		return repo
	}

	return NewRepository(tenancy.HandleFromContext(ctx, a.fallback), a.tracer)
}

// PageParams reads the page and size query parameters, zero when absent or malformed.
func PageParams(r *http.Request) (int64, int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)

	return page, size
}

func NewAPI(fallback *tenancy.Handle, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.fallback = fallback

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
