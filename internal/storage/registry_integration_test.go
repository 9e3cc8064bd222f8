// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

//go:build integration

package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/tenant-schema-service/internal/dbtest"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
)

func TestIntegration_Registry(t *testing.T) {
	ctx := context.Background()
	client := dbtest.NewClient(t, ctx)

	registry := NewRegistry(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("integration"), logging.NewNoopLogger())

	t.Run("register is idempotent", func(t *testing.T) {
		created, err := registry.Register(ctx, "acme", "org_acme")
		require.NoError(t, err)
		require.True(t, created)

		created, err = registry.Register(ctx, "acme", "org_acme")
		require.NoError(t, err)
		require.False(t, created)

		org, err := registry.FindByOrganizationID(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, types.StatusProvisioning, org.Status)
		require.Nil(t, org.ProvisionedAt)
	})

	t.Run("concurrent registration creates one row", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			winners int
		)

		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := registry.Register(ctx, "race", "org_race")
				assert.NoError(t, err)
				if created {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, winners)
	})

	t.Run("schema name is unique", func(t *testing.T) {
		_, err := registry.Register(ctx, "other", "org_acme")
		require.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("transitions", func(t *testing.T) {
		org, err := registry.MarkActive(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, types.StatusActive, org.Status)
		require.NotNil(t, org.ProvisionedAt)
		provisionedAt := *org.ProvisionedAt

		_, err = registry.MarkActive(ctx, "acme")
		require.ErrorIs(t, err, types.ErrInvalidStateTransition)

		org, err = registry.Transition(ctx, "acme", types.TransitionSuspend)
		require.NoError(t, err)
		require.Equal(t, types.StatusSuspended, org.Status)

		org, err = registry.Transition(ctx, "acme", types.TransitionReactivate)
		require.NoError(t, err)
		require.Equal(t, types.StatusActive, org.Status)
		require.True(t, provisionedAt.Equal(*org.ProvisionedAt))

		_, err = registry.Transition(ctx, "missing", types.TransitionSuspend)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and remove", func(t *testing.T) {
		orgs, err := registry.List(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 2)

		require.NoError(t, registry.Remove(ctx, "race"))
		require.NoError(t, registry.Remove(ctx, "race"))

		_, err = registry.FindByOrganizationID(ctx, "race")
		require.ErrorIs(t, err, ErrNotFound)

		org, err := registry.FindBySchemaName(ctx, "org_acme")
		require.NoError(t, err)
		require.Equal(t, "acme", org.ID)
	})

	t.Run("deleted row is a tombstone", func(t *testing.T) {
		_, err := registry.MarkDeleted(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = registry.Register(ctx, "tomb", "org_tomb")
		require.NoError(t, err)
		_, err = registry.MarkActive(ctx, "tomb")
		require.NoError(t, err)

		org, err := registry.MarkDeleted(ctx, "tomb")
		require.NoError(t, err)
		require.Equal(t, types.StatusDeleted, org.Status)

		created, err := registry.Register(ctx, "tomb", "org_tomb")
		require.NoError(t, err)
		require.False(t, created)

		_, err = registry.MarkActive(ctx, "tomb")
		require.ErrorIs(t, err, types.ErrInvalidStateTransition)

		org, err = registry.FindByOrganizationID(ctx, "tomb")
		require.NoError(t, err)
		require.Equal(t, types.StatusDeleted, org.Status)
	})
}
