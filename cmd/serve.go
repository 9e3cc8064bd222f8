// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/canonical/tenant-schema-service/internal/config"
	"github.com/canonical/tenant-schema-service/internal/db"
	"github.com/canonical/tenant-schema-service/internal/logging"
	"github.com/canonical/tenant-schema-service/internal/monitoring"
	"github.com/canonical/tenant-schema-service/internal/monitoring/prometheus"
	"github.com/canonical/tenant-schema-service/internal/storage"
	"github.com/canonical/tenant-schema-service/internal/tenancy"
	"github.com/canonical/tenant-schema-service/internal/tracing"
	"github.com/canonical/tenant-schema-service/pkg/activity"
	"github.com/canonical/tenant-schema-service/pkg/organization"
	"github.com/canonical/tenant-schema-service/pkg/posts"
	"github.com/canonical/tenant-schema-service/pkg/provisioning"
	"github.com/canonical/tenant-schema-service/pkg/tenant"
	"github.com/canonical/tenant-schema-service/pkg/web"
)

const serviceName = "tenant-schema-service"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// core holds the components shared by the server and the admin commands.
type core struct {
	db            *db.DBClient
	registry      *storage.Registry
	connector     *tenancy.Connector
	organizations *organization.Service
}

func newCore(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*core, error) {
	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %v", err)
	}

	registry := storage.NewRegistry(dbClient, tracer, monitor, logger)
	provisioner := provisioning.NewProvisioner(
		provisioning.Config{
			Timeout:        specs.ProvisionTimeout,
			CleanupTimeout: specs.CleanupTimeout,
		},
		dbClient,
		provisioning.NewCatalog(dbClient, tracer),
		registry,
		tracer,
		monitor,
		logger,
	)

	c := new(core)
	c.db = dbClient
	c.registry = registry
	c.connector = tenancy.NewConnector(dbClient)
	c.organizations = organization.NewService(registry, provisioner, tracer, monitor, logger)

	return c, nil
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, specs.TracingSampleRatio, logger))

	app, err := newCore(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}
	defer app.db.Close()

	propagator := tenancy.NewPropagator(logger)
	if err := propagator.Register(posts.RepositoryName, posts.NewFactory(tracer)); err != nil {
		return err
	}
	if err := propagator.Register(activity.RepositoryName, activity.NewFactory(tracer)); err != nil {
		return err
	}

	tenantMiddleware := tenant.NewMiddleware(
		tenant.NewResolver(app.registry, app.connector, tracer, monitor, logger),
		propagator,
		tracer,
		monitor,
		logger,
	)

	// Start gRPC server
	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		logger.Fatalf("failed to listen on grpc port: %v", err)
	}

	grpcServer := grpc.NewServer(
		tracing.NewMiddleware(monitor, logger).GRPCServerOption(),
		grpc.ChainUnaryInterceptor(tenantMiddleware.GRPCInterceptor),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		logger.Infof("Starting gRPC server on port %v", specs.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	router := web.NewRouter(
		web.Config{AllowedOrigins: specs.CORSAllowedOrigins},
		app.organizations,
		tenantMiddleware,
		app.connector.Default(),
		app.db,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}
	if err := tracer.Shutdown(ctx); err != nil {
		logger.Errorf("failed to flush traces: %v", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
