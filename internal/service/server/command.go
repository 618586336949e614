package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/project-version/internal/api/grpc/projectversion"
	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/service/common"
)

// Options controls the version server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// Overrides replace configured source settings.
	Overrides common.Overrides
}

// Run resolves the version, then serves it over gRPC and blocks until the
// context is canceled or the server stops.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "serve")

	// Load configuration first to get server settings.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = opts.Overrides.Apply(cfg); err != nil {
		return err
	}

	// Resolve once; the holder is read-only afterwards.
	holder := domain.New()
	if err = common.ResolveWithState(ctx, cfg, common.NewSources(cfg), holder); err != nil {
		return fmt.Errorf("resolve project version: %w", err)
	}

	listenAddress := resolveListenAddress(cfg.ServerAddress, opts.ListenAddress)

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	logger.InfoKV(
		ctx,
		"Project version server listening",
		"listen_address", lis.Addr().String(),
		"version", holder.Version(),
	)

	return Serve(ctx, lis, holder)
}

// Serve serves holder on lis until ctx is canceled.
func Serve(ctx context.Context, lis net.Listener, holder *domain.ProjectVersion) error {
	svc := newService(holder)

	// Create and configure gRPC server with the version and health services.
	grpcServer := grpc.NewServer()
	api.RegisterProjectVersionServer(grpcServer, api.NewServer(svc))
	healthpb.RegisterHealthServer(grpcServer, api.NewHealthServer(svc.holder.Snapshot()))

	// stopped is closed when Serve returns; done is closed once GracefulStop finishes.
	stopped := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		select {
		case <-ctx.Done():
			logger.InfoKV(ctx, "Shutting down gRPC server")
			grpcServer.GracefulStop()
		case <-stopped:
		}
	}()

	err := grpcServer.Serve(lis)
	close(stopped)
	<-done

	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.ErrorKV(ctx, "GRPC server failed", "listen_address", lis.Addr().String(), "error", err)

		return fmt.Errorf("serve gRPC: %w", err)
	}

	logger.InfoKV(ctx, "GRPC server stopped")

	return nil
}

// resolveListenAddress returns override when set, otherwise the configured address.
func resolveListenAddress(configAddr, override string) string {
	if override != "" {
		return override
	}

	return configAddr
}
