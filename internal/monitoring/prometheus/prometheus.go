// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime         *prometheus.HistogramVec
	dependencyAvailable  *prometheus.GaugeVec
	provisioningDuration *prometheus.HistogramVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	return m.observe(m.responseTime, tags, value)
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	g, err := m.dependencyAvailable.GetMetricWith(m.labels(tags))
	if err != nil {
		return fmt.Errorf("dependency availability metric: %w", err)
	}
	g.Set(value)
	return nil
}

func (m *Monitor) SetProvisioningDuration(tags map[string]string, value float64) error {
	return m.observe(m.provisioningDuration, tags, value)
}

func (m *Monitor) observe(h *prometheus.HistogramVec, tags map[string]string, value float64) error {
	o, err := h.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}
	o.Observe(value)
	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		l[k] = v
	}
	return l
}

func (m *Monitor) register(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		m.logger.Debugf("metric already registered: %v", err)
	}
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)
	m.dependencyAvailable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)
	m.provisioningDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tenant_provisioning_duration_seconds",
			Help:    "Time spent provisioning a tenant schema",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"outcome", "service"},
	)

	m.register(m.responseTime)
	m.register(m.dependencyAvailable)
	m.register(m.provisioningDuration)

	return m
}
