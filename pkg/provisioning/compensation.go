// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"

	"github.com/canonical/tenant-schema-service/internal/logging"
)

type compensation struct {
	step string
	undo func(context.Context) error
}

// compensations is the undo stack of one provisioning run.
type compensations struct {
	organizationID string
	stack          []compensation

	logger logging.LoggerInterface
}

func (c *compensations) push(step string, undo func(context.Context) error) {
	c.stack = append(c.stack, compensation{step: step, undo: undo})
}

func (c *compensations) len() int {
	return len(c.stack)
}

// rollback runs every undo in reverse order. Failures are logged and do not
// stop the remaining undos.
func (c *compensations) rollback(ctx context.Context) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		comp := c.stack[i]
		if err := comp.undo(ctx); err != nil {
			c.logger.Errorf("failed to undo %s for organization %s: %v", comp.step, c.organizationID, err)
			continue
		}
		c.logger.Infof("undid %s for organization %s", comp.step, c.organizationID)
	}
	c.stack = nil
}

func newCompensations(organizationID string, logger logging.LoggerInterface) *compensations {
	return &compensations{organizationID: organizationID, logger: logger}
}
