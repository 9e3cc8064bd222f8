// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"errors"
	"strings"
	"testing"

	"github.com/canonical/tenant-schema-service/internal/types"
)

func TestDeriveSchemaName(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
		err      error
	}{
		{name: "hyphenated id", id: "acme-corp-123", expected: "org_acme_corp_123"},
		{name: "mixed case", id: "AcMe_Corp", expected: "org_acme_corp"},
		{name: "digits only", id: "42", expected: "org_42"},
		{name: "empty", id: "", err: types.ErrInvalidIdentifier},
		{name: "space", id: "acme corp", err: types.ErrInvalidIdentifier},
		{name: "dot", id: "acme.corp", err: types.ErrInvalidIdentifier},
		{name: "quote", id: `acme"; DROP SCHEMA public; --`, err: types.ErrInvalidIdentifier},
		{name: "non ascii", id: "açme", err: types.ErrInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveSchemaName(tt.id)

			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected error %v, got %v", tt.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDeriveSchemaName_Truncation(t *testing.T) {
	base := strings.Repeat("a", 70)

	first, err := DeriveSchemaName(base + "-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DeriveSchemaName(base + "-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != MaxSchemaNameLength || len(second) != MaxSchemaNameLength {
		t.Fatalf("expected truncated names of %d characters, got %d and %d", MaxSchemaNameLength, len(first), len(second))
	}
	if first == second {
		t.Fatalf("ids sharing a long prefix collided on %q", first)
	}

	again, _ := DeriveSchemaName(base + "-1")
	if again != first {
		t.Fatalf("derivation is not deterministic: %q != %q", again, first)
	}
}

func TestDeriveSchemaName_LengthBoundary(t *testing.T) {
	// "org_" + 59 characters is exactly the limit and must not be rewritten.
	id := strings.Repeat("b", MaxSchemaNameLength-len(SchemaPrefix))

	got, err := DeriveSchemaName(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SchemaPrefix+id {
		t.Fatalf("expected untouched name, got %q", got)
	}

	got, err = DeriveSchemaName(id + "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != MaxSchemaNameLength || strings.HasPrefix(got, SchemaPrefix+id) {
		t.Fatalf("expected hashed truncation, got %q", got)
	}
}

func TestValidateSchemaName(t *testing.T) {
	for _, name := range []string{"org_a", "public", "a"} {
		if err := ValidateSchemaName(name); err != nil {
			t.Errorf("expected %q to be valid, got %v", name, err)
		}
	}

	for _, name := range []string{"", "1org", "_org", "Org", "org-a", "org a", strings.Repeat("a", 64)} {
		if err := ValidateSchemaName(name); !errors.Is(err, types.ErrInvalidIdentifier) {
			t.Errorf("expected %q to be invalid, got %v", name, err)
		}
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := QuoteIdentifier("org_a", "posts"); got != `"org_a"."posts"` {
		t.Fatalf("unexpected identifier %s", got)
	}
}

func FuzzDeriveSchemaName(f *testing.F) {
	for _, seed := range []string{
		"acme-corp-123",
		"a",
		strings.Repeat("x", 59),
		strings.Repeat("x", 60),
		strings.Repeat("Z-", 40),
		strings.Repeat("9", 120),
		"___",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, id string) {
		name, err := DeriveSchemaName(id)
		if ValidateOrganizationID(id) != nil {
			if !errors.Is(err, types.ErrInvalidIdentifier) {
				t.Fatalf("expected invalid identifier for %q, got %v", id, err)
			}
			return
		}

		if err != nil {
			t.Fatalf("valid id %q rejected: %v", id, err)
		}
		if len(name) > MaxSchemaNameLength {
			t.Fatalf("name %q exceeds %d characters", name, MaxSchemaNameLength)
		}
		if err := ValidateSchemaName(name); err != nil {
			t.Fatalf("derived name %q fails validation: %v", name, err)
		}

		again, _ := DeriveSchemaName(id)
		if again != name {
			t.Fatalf("non deterministic derivation for %q", id)
		}
	})
}
