// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	eventSystemStartup      = "sys_startup"
	eventSystemShutdown     = "sys_shutdown"
	eventAdminAction        = "admin_action"
	eventTenantAccessDenied = "tenant_access_denied"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger emits security relevant events on a dedicated channel.
type SecurityLogger struct {
	l *zap.Logger
}

func newSecurityLogger(base *zap.Logger) *SecurityLogger {
	return &SecurityLogger{
		l: base.Named("security").With(zap.String("type", "security")),
	}
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Warn("system startup", zap.String("event", eventSystemStartup))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Warn("system shutdown", zap.String("event", eventSystemShutdown))
}

// AdminAction records a destructive or lifecycle changing operation.
func (s *SecurityLogger) AdminAction(actor, action, resource string) {
	s.l.Warn(
		"admin action",
		zap.String("event", eventAdminAction),
		zap.String("actor", actor),
		zap.String("action", action),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) TenantAccessDenied(organizationID, reason string) {
	s.l.Info(
		"tenant access denied",
		zap.String("event", eventTenantAccessDenied),
		zap.String("organization_id", organizationID),
		zap.String("reason", reason),
	)
}
