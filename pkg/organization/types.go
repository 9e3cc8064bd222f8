// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

// CreateOrganizationRequest is the body of an organization creation call.
// A missing id is generated by the service.
type CreateOrganizationRequest struct {
	ID string `json:"id" validate:"omitempty,max=128,organization_id"`
}
