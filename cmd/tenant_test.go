// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/canonical/tenant-schema-service/internal/types"
	"github.com/canonical/tenant-schema-service/pkg/provisioning"
)

func TestPrintOrganizations(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	provisioned := created.Add(time.Minute)

	var buf bytes.Buffer
	printOrganizations(&buf, []*types.Organization{
		{ID: "acme-corp-123", SchemaName: "org_acme_corp_123", Status: types.StatusActive, CreatedAt: created, ProvisionedAt: &provisioned},
		{ID: "beta", SchemaName: "org_beta", Status: types.StatusProvisioning, CreatedAt: created},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", buf.String())
	}
	if !strings.Contains(lines[1], "org_acme_corp_123") || !strings.Contains(lines[1], "active") || !strings.Contains(lines[1], "2026-01-02T03:05:05Z") {
		t.Errorf("unexpected row %q", lines[1])
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Errorf("expected placeholder provisioned_at, got %q", lines[2])
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &provisioning.Report{
		SchemaName:     "org_beta",
		SchemaExists:   true,
		MissingTables:  []string{"posts"},
		MissingIndexes: []string{},
	})

	out := buf.String()
	for _, want := range []string{"org_beta", "posts", "COMPLETE", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
