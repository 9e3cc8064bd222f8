// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"fmt"
	"sync"

	"github.com/canonical/tenant-schema-service/internal/logging"
)

// Factory builds a data-access facade bound to h.
type Factory func(h *Handle) any

// Scope holds the facades built for one request. It is read-only once
// created and only reachable through that request's context.
type Scope struct {
	tenant       *TenantContext
	repositories map[string]any
}

// Tenant returns the tenant the scope was built for.
func (s *Scope) Tenant() *TenantContext {
	return s.tenant
}

// Names returns the repositories bound in this scope.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.repositories))
	for n := range s.repositories {
		names = append(names, n)
	}
	return names
}

type scopeKey struct{}

// Propagator makes the tenant handle of a request reachable by the
// data-access components running in it. Instead of writing the handle onto
// shared repositories, it builds a fresh facade per repository and request,
// so concurrent requests for different tenants never see each other's handle.
type Propagator struct {
	mu        sync.RWMutex
	factories map[string]Factory

	logger logging.LoggerInterface
}

// Register adds a named repository factory. It is meant to be called while
// wiring the application, before serving requests.
func (p *Propagator) Register(name string, f Factory) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.factories[name]; ok {
		return fmt.Errorf("repository %q already registered", name)
	}

	p.factories[name] = f
	return nil
}

// Propagate returns a child of ctx carrying tc and a Scope with one facade
// per requested repository. With no names every registered repository is
// bound. Names without a registered factory are skipped: the repository may
// simply not take part in this route.
func (p *Propagator) Propagate(ctx context.Context, tc *TenantContext, names ...string) context.Context {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(names) == 0 {
		for n := range p.factories {
			names = append(names, n)
		}
	}

	scope := &Scope{
		tenant:       tc,
		repositories: make(map[string]any, len(names)),
	}

	for _, name := range names {
		f, ok := p.factories[name]
		if !ok {
			p.logger.Debugf("repository %s not registered, skipping propagation for organization %s", name, tc.OrganizationID)
			continue
		}
		scope.repositories[name] = f(tc.Handle)
	}

	ctx = WithTenant(ctx, tc)
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope built for the current request, if any.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// Lookup returns the facade registered as name for the current request.
func Lookup[T any](ctx context.Context, name string) (T, bool) {
	var zero T

	s, ok := ScopeFromContext(ctx)
	if !ok {
		return zero, false
	}

	v, ok := s.repositories[name]
	if !ok {
		return zero, false
	}

	r, ok := v.(T)
	return r, ok
}

func NewPropagator(logger logging.LoggerInterface) *Propagator {
	p := new(Propagator)

	p.factories = make(map[string]Factory)
	p.logger = logger

	return p
}
