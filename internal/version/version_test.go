// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package version

import "testing"

func TestRead(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	if info := Read(); info.Version != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %s", info.Version)
	}
}
