// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/validation"
	"github.com/canonical/tenant-schema-service/pkg/tenant"
)

type API struct {
	service   ServiceInterface
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the organization routes. Each scoped function
// mounts further routes under /api/v0/organizations/{organizationId} in
// their own group, so they can add middlewares without affecting these.
func (a *API) RegisterEndpoints(mux chi.Router, scoped ...func(chi.Router)) {
	mux.Get("/api/v0/organizations", a.handleList)
	mux.Post("/api/v0/organizations", a.handleCreate)

	mux.Route("/api/v0/organizations/{"+tenant.PathParam+"}", func(r chi.Router) {
		r.Get("/", a.handleGet)
		r.Post("/suspend", a.handleSuspend)
		r.Post("/reactivate", a.handleReactivate)
		r.Get("/schema", a.handleVerify)
		r.Delete("/schema", a.handleDrop)

		for _, s := range scoped {
			r.Group(s)
		}
	})
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	orgs, err := a.service.List(r.Context())
	if err != nil {
		a.logger.Errorf("failed to list organizations: %v", err)
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "List of organizations", orgs, nil)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := new(CreateOrganizationRequest)

	// an empty body creates an organization with a generated id
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		httpTypes.WriteBadRequest(w, "failed to parse request body")
		return
	}

	if err := a.validator.Struct(req); err != nil {
		httpTypes.WriteBadRequest(w, err.Error())
		return
	}

	org, err := a.service.Create(WithActor(r.Context(), actor(r)), req.ID)
	if err != nil {
		a.logger.Errorf("failed to create organization: %v", err)
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusCreated, "Created organization", org, nil)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	org, err := a.service.Get(r.Context(), chi.URLParam(r, tenant.PathParam))
	if err != nil {
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "Organization", org, nil)
}

func (a *API) handleSuspend(w http.ResponseWriter, r *http.Request) {
	org, err := a.service.Suspend(WithActor(r.Context(), actor(r)), chi.URLParam(r, tenant.PathParam))
	if err != nil {
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "Suspended organization", org, nil)
}

func (a *API) handleReactivate(w http.ResponseWriter, r *http.Request) {
	org, err := a.service.Reactivate(WithActor(r.Context(), actor(r)), chi.URLParam(r, tenant.PathParam))
	if err != nil {
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "Reactivated organization", org, nil)
}

func (a *API) handleVerify(w http.ResponseWriter, r *http.Request) {
	report, err := a.service.Verify(r.Context(), chi.URLParam(r, tenant.PathParam))
	if err != nil {
		httpTypes.WriteError(w, err)
		return
	}

	httpTypes.WriteData(w, http.StatusOK, "Schema report", report, nil)
}

func (a *API) handleDrop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, tenant.PathParam)

	if err := a.service.Drop(WithActor(r.Context(), actor(r)), id); err != nil {
		a.logger.Errorf("failed to drop organization %s: %v", id, err)
		httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func actor(r *http.Request) string {
	return "http:" + r.RemoteAddr
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.validator = validation.NewValidator()

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
