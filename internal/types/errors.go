// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned for malformed organization ids or schema names.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrTenantNotFound is returned when no registry row exists for an organization.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantNotActive is returned when a tenant exists but cannot serve tenant-scoped work.
	ErrTenantNotActive = errors.New("tenant not active")
	// ErrInvalidStateTransition is returned when a status change is not allowed from the current status.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrProvisioningFailed is matched by every ProvisioningFailedError.
	ErrProvisioningFailed = errors.New("provisioning failed")
)

// ProvisioningFailedError wraps the error that aborted a provisioning run.
type ProvisioningFailedError struct {
	OrganizationID string
	Step           string
	Cause          error
}

func (e *ProvisioningFailedError) Error() string {
	return fmt.Sprintf("provisioning organization %q failed at step %q: %v", e.OrganizationID, e.Step, e.Cause)
}

func (e *ProvisioningFailedError) Unwrap() error {
	return e.Cause
}

func (e *ProvisioningFailedError) Is(target error) bool {
	return target == ErrProvisioningFailed
}

// NewProvisioningFailedError builds a ProvisioningFailedError for the given step.
func NewProvisioningFailedError(organizationID, step string, cause error) *ProvisioningFailedError {
	return &ProvisioningFailedError{
		OrganizationID: organizationID,
		Step:           step,
		Cause:          cause,
	}
}
