// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/tenant-schema-service/internal/types"
)

const (
	// MaxSchemaNameLength is the PostgreSQL identifier limit (NAMEDATALEN - 1).
	MaxSchemaNameLength = 63
	// SchemaPrefix is prepended to every derived schema name.
	SchemaPrefix = "org_"
	// DefaultSchema holds the registry and any tenant-agnostic tables.
	DefaultSchema = "public"
)

var (
	organizationIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	schemaNamePattern     = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// ValidateOrganizationID checks an external organization identifier.
func ValidateOrganizationID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty organization id", types.ErrInvalidIdentifier)
	}
	if !organizationIDPattern.MatchString(id) {
		return fmt.Errorf("%w: organization id %q contains characters outside [A-Za-z0-9_-]", types.ErrInvalidIdentifier, id)
	}
	return nil
}

// ValidateSchemaName checks that name is a bounded, lowercase, unquoted-safe identifier.
func ValidateSchemaName(name string) error {
	if len(name) == 0 || len(name) > MaxSchemaNameLength {
		return fmt.Errorf("%w: schema name %q must be 1-%d characters", types.ErrInvalidIdentifier, name, MaxSchemaNameLength)
	}
	if !schemaNamePattern.MatchString(name) {
		return fmt.Errorf("%w: schema name %q must match %s", types.ErrInvalidIdentifier, name, schemaNamePattern.String())
	}
	return nil
}

// DeriveSchemaName maps an organization id to its schema name.
//
// The id is lowercased, hyphens become underscores and the result is prefixed
// with "org_". Names longer than MaxSchemaNameLength are cut to exactly that
// length, with the tail replaced by a hash of the full name so that ids
// sharing a long prefix still map to distinct schemas. The final name is
// validated again after truncation.
func DeriveSchemaName(organizationID string) (string, error) {
	if err := ValidateOrganizationID(organizationID); err != nil {
		return "", err
	}

	name := SchemaPrefix + strings.ReplaceAll(strings.ToLower(organizationID), "-", "_")
	if len(name) > MaxSchemaNameLength {
		name = truncateSchemaName(name)
	}

	if err := ValidateSchemaName(name); err != nil {
		return "", fmt.Errorf("derived schema name for organization %q: %w", organizationID, err)
	}

	return name, nil
}

func truncateSchemaName(name string) string {
	suffix := fmt.Sprintf("_%08x", uint32(xxhash.Sum64String(name)))
	return name[:MaxSchemaNameLength-len(suffix)] + suffix
}

// QuoteIdentifier quotes one or more identifier parts, e.g. schema and table.
func QuoteIdentifier(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}
