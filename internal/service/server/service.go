package server

import (
	"context"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
)

// service exposes the holder to the transport layer.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// holder is the resolved project version; read-only after startup.
	holder *domain.ProjectVersion
}

// newService creates a service reading from holder.
func newService(holder *domain.ProjectVersion) *service {
	if holder == nil {
		holder = domain.New()
	}

	return &service{
		holder: holder,
	}
}

// GetProjectVersion returns the stored snapshot.
func (s *service) GetProjectVersion(ctx context.Context) domain.Snapshot {
	snapshot := s.holder.Snapshot()

	logger.DebugKV(ctx, "Project version requested", "version", snapshot.Version, "mode", snapshot.Mode.String())

	return snapshot
}
