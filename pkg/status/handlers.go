// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/tenant-schema-service/internal/http/types"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/version"
)

const (
	okValue = "ok"
	koValue = "unavailable"

	databaseComponent = "database"
)

type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type API struct {
	database PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

// alive reports the service healthy only when the database answers.
// The result is also exported as the dependency availability metric.
func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	s := Status{Status: okValue, Database: okValue}
	code := http.StatusOK
	available := 1.0

	if err := a.database.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		s.Status = koValue
		s.Database = koValue
		code = http.StatusServiceUnavailable
		available = 0
	}

	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": databaseComponent}, available); err != nil {
		a.logger.Debugf("error setting dependency availability metric: %v", err)
	}

	httpTypes.WriteJSON(w, code, s)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httpTypes.WriteJSON(w, http.StatusOK, version.Read())
}

func NewAPI(database PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.database = database

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
