// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Organization is the registry record of a tenant and its schema.
type Organization struct {
	ID            string     `db:"organization_id" json:"id"`
	SchemaName    string     `db:"schema_name" json:"schema_name"`
	Status        Status     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ProvisionedAt *time.Time `db:"provisioned_at" json:"provisioned_at,omitempty"`
}

// IsUsable reports whether tenant-scoped work may run for this organization.
func (o *Organization) IsUsable() bool {
	return o != nil && o.Status.IsUsable()
}
