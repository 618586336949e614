package projectversion

import (
	"context"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	GetProjectVersion(ctx context.Context) domain.Snapshot
}

// Server implements the ProjectVersionService gRPC API.
type Server struct {
	// service provides the stored project version.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetProjectVersion returns the stored version, or an empty string when none is known.
func (s *Server) GetProjectVersion(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	snapshot := s.service.GetProjectVersion(ctx)

	return wrapperspb.String(snapshot.Version), nil
}

// NewHealthServer returns a health server whose status for ServiceName reflects
// whether snapshot carries a version.
func NewHealthServer(snapshot domain.Snapshot) *health.Server {
	hs := health.NewServer()

	servingStatus := healthpb.HealthCheckResponse_NOT_SERVING
	if !snapshot.IsZero() {
		servingStatus = healthpb.HealthCheckResponse_SERVING
	}

	hs.SetServingStatus(ServiceName, servingStatus)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return hs
}
