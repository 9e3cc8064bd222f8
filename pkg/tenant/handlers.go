// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
)

// Middleware resolves the tenant of incoming requests and propagates its
// handle to the repositories taking part in the request.
type Middleware struct {
	resolver   ResolverInterface
	propagator PropagatorInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HTTPMiddleware binds the named repositories, or every registered one when
// none is named, to the tenant of the request. Requests without an
// organization id continue tenant-agnostic.
func (m *Middleware) HTTPMiddleware(repositories ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenant.Middleware.HTTPMiddleware")
			defer span.End()

			id := ExtractOrganizationID(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			tc, err := m.resolver.Resolve(ctx, id)
			if err != nil {
				m.logger.Debugf("failed to resolve tenant %s: %v", id, err)
				httpTypes.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(m.propagator.Propagate(r.Context(), tc, repositories...)))
		})
	}
}

// RequireTenant rejects requests that reached it without a tenant context.
func (m *Middleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := tenancy.FromContext(r.Context()); !ok {
			httpTypes.WriteBadRequest(w, "missing "+HeaderName+" header or "+PathParam+" parameter")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GRPCInterceptor resolves the organization id carried in the call metadata.
// Calls without one are served tenant-agnostic.
func (m *Middleware) GRPCInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, span := m.tracer.Start(ctx, "tenant.Middleware.GRPCInterceptor")
	defer span.End()

	// metadata keys are lowercased
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return handler(ctx, req)
	}

	values := md.Get(strings.ToLower(HeaderName))
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return handler(ctx, req)
	}

	tc, err := m.resolver.Resolve(ctx, values[0])
	if err != nil {
		m.logger.Debugf("failed to resolve tenant for %s: %v", info.FullMethod, err)
		return nil, httpTypes.GRPCError(err)
	}

	return handler(m.propagator.Propagate(ctx, tc), req)
}

func NewMiddleware(
	resolver ResolverInterface,
	propagator PropagatorInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		resolver:   resolver,
		propagator: propagator,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
