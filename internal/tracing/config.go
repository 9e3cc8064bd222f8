// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/tenant-schema-service/internal/logging"
)

const defaultServiceName = "tenant-schema-service"

type Config struct {
	OtelHTTPEndpoint string
	OtelGRPCEndpoint string
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string
	// SampleRatio is the fraction of root spans kept, parent decisions are honoured.
	SampleRatio float64

	Logger logging.LoggerInterface

	Enabled bool
}

func (c *Config) serviceName() string {
	if c.ServiceName == "" {
		return defaultServiceName
	}
	return c.ServiceName
}

func (c *Config) sampleRatio() float64 {
	switch {
	case c.SampleRatio <= 0, c.SampleRatio > 1:
		return 1
	}
	return c.SampleRatio
}

func NewConfig(enabled bool, otelGRPCEndpoint, otelHTTPEndpoint string, sampleRatio float64, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.OtelGRPCEndpoint = otelGRPCEndpoint
	c.OtelHTTPEndpoint = otelHTTPEndpoint
	c.ServiceName = defaultServiceName
	c.SampleRatio = sampleRatio
	c.Logger = logger
	c.Enabled = enabled

	return c
}

func NewNoopConfig() *Config {
	return &Config{Logger: logging.NewNoopLogger()}
}
