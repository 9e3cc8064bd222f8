// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/pkg/activity"
	"github.com/canonical/tenant-schema-service/pkg/metrics"
	"github.com/canonical/tenant-schema-service/pkg/organization"
	"github.com/canonical/tenant-schema-service/pkg/posts"
	"github.com/canonical/tenant-schema-service/pkg/status"
	"github.com/canonical/tenant-schema-service/pkg/tenant"
)

type Config struct {
	AllowedOrigins []string
}

func NewRouter(
	cfg Config,
	organizations organization.ServiceInterface,
	tenantMiddleware *tenant.Middleware,
	fallback *tenancy.Handle,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.AllowedOrigins),
	)

	router.Use(middlewares...)

	postsAPI := posts.NewAPI(fallback, tracer, monitor, logger)
	activityAPI := activity.NewAPI(fallback, tracer, monitor, logger)

	// tenant-scoped routes resolve the organization, bind the repositories
	// to its schema and run every write in one transaction
	tenantScoped := func(r chi.Router) {
		r.Use(
			tenantMiddleware.HTTPMiddleware(posts.RepositoryName, activity.RepositoryName),
			tenantMiddleware.RequireTenant,
			db.TransactionMiddleware(dbClient, logger),
		)

		postsAPI.RegisterEndpoints(r)
		activityAPI.RegisterEndpoints(r)
	}

	organization.NewAPI(organizations, tracer, monitor, logger).RegisterEndpoints(router, tenantScoped)
	router.Route("/api/v0/tenant", tenantScoped)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
