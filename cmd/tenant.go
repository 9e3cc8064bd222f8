// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/tenant-schema-service/internal/config"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/internal/types"
	"github.com/canonical/tenant-schema-service/pkg/organization"
	"github.com/canonical/tenant-schema-service/pkg/provisioning"
)

var tenantDSN string

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage organization schemas",
}

var provisionTenantCmd = &cobra.Command{
	Use:   "provision [organization-id]",
	Short: "Provision the schema of an organization, generating an id when none is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}

		org, err := svc.Create(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to provision organization: %w", err)
		}

		printOrganizations(cmd.OutOrStdout(), []*types.Organization{org})
		return nil
	}),
}

var dropTenantCmd = &cobra.Command{
	Use:   "drop [organization-id]",
	Short: "Drop the schema of an organization and remove it from the registry",
	Args:  cobra.ExactArgs(1),
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, args []string) error {
		if err := svc.Drop(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to drop organization: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Organization dropped: %s\n", args[0])
		return nil
	}),
}

var suspendTenantCmd = &cobra.Command{
	Use:   "suspend [organization-id]",
	Short: "Suspend an organization",
	Args:  cobra.ExactArgs(1),
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, args []string) error {
		org, err := svc.Suspend(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to suspend organization: %w", err)
		}

		printOrganizations(cmd.OutOrStdout(), []*types.Organization{org})
		return nil
	}),
}

var reactivateTenantCmd = &cobra.Command{
	Use:   "reactivate [organization-id]",
	Short: "Reactivate a suspended organization",
	Args:  cobra.ExactArgs(1),
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, args []string) error {
		org, err := svc.Reactivate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to reactivate organization: %w", err)
		}

		printOrganizations(cmd.OutOrStdout(), []*types.Organization{org})
		return nil
	}),
}

var statusTenantCmd = &cobra.Command{
	Use:   "status [organization-id]",
	Short: "Show the registry record of an organization and verify its schema",
	Args:  cobra.ExactArgs(1),
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, args []string) error {
		org, err := svc.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get organization: %w", err)
		}

		report, err := svc.Verify(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to verify organization: %w", err)
		}

		out := cmd.OutOrStdout()
		printOrganizations(out, []*types.Organization{org})
		fmt.Fprintln(out)
		printReport(out, report)

		if !report.Complete() {
			return fmt.Errorf("schema %s is incomplete", report.SchemaName)
		}
		return nil
	}),
}

var listTenantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered organizations",
	Args:  cobra.NoArgs,
	RunE: withOrganizations(func(ctx context.Context, cmd *cobra.Command, svc organization.ServiceInterface, _ []string) error {
		orgs, err := svc.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list organizations: %w", err)
		}

		printOrganizations(cmd.OutOrStdout(), orgs)
		return nil
	}),
}

type organizationsRunner func(context.Context, *cobra.Command, organization.ServiceInterface, []string) error

// withOrganizations connects to the database named by --dsn or the DSN
// environment variable and hands an organization service to fn.
func withOrganizations(fn organizationsRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if tenantDSN != "" {
			if err := os.Setenv("DSN", tenantDSN); err != nil {
				return err
			}
		}

		specs := new(config.EnvSpec)
		if err := envconfig.Process("", specs); err != nil {
			return fmt.Errorf("issues with environment sourcing: %w", err)
		}

		logger := logging.NewLogger(specs.LogLevel)
		defer logger.Sync()

		app, err := newCore(specs, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(serviceName), logger)
		if err != nil {
			return err
		}
		defer app.db.Close()

		ctx := organization.WithActor(cmd.Context(), cliActor())

		return fn(ctx, cmd, app.organizations, args)
	}
}

func cliActor() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "cli"
	}
	return "cli:" + u.Username
}

func printOrganizations(out io.Writer, orgs []*types.Organization) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEMA\tSTATUS\tCREATED_AT\tPROVISIONED_AT")
	for _, o := range orgs {
		provisionedAt := "-"
		if o.ProvisionedAt != nil {
			provisionedAt = o.ProvisionedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.SchemaName, o.Status, o.CreatedAt.Format(time.RFC3339), provisionedAt)
	}
	w.Flush()
}

func printReport(out io.Writer, r *provisioning.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "SCHEMA\t%s\n", r.SchemaName)
	fmt.Fprintf(w, "EXISTS\t%v\n", r.SchemaExists)
	fmt.Fprintf(w, "MISSING_TABLES\t%s\n", joinOrDash(r.MissingTables))
	fmt.Fprintf(w, "MISSING_INDEXES\t%s\n", joinOrDash(r.MissingIndexes))
	fmt.Fprintf(w, "COMPLETE\t%v\n", r.Complete())
	w.Flush()
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

func init() {
	tenantCmd.PersistentFlags().StringVar(&tenantDSN, "dsn", "", "PostgreSQL DSN connection string, defaults to the DSN environment variable")

	tenantCmd.AddCommand(provisionTenantCmd)
	tenantCmd.AddCommand(dropTenantCmd)
	tenantCmd.AddCommand(suspendTenantCmd)
	tenantCmd.AddCommand(reactivateTenantCmd)
	tenantCmd.AddCommand(statusTenantCmd)
	tenantCmd.AddCommand(listTenantsCmd)

	rootCmd.AddCommand(tenantCmd)
}
