package projectversion

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "projectversion.v1.ProjectVersionService"

	// GetProjectVersionMethod is the full method name of GetProjectVersion.
	GetProjectVersionMethod = "/" + ServiceName + "/GetProjectVersion"
)

// ProjectVersionServer is the server API for the ProjectVersionService.
type ProjectVersionServer interface {
	GetProjectVersion(ctx context.Context, req *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// ServiceDesc describes ProjectVersionService for grpc.ServiceRegistrar.
//
//nolint:gochecknoglobals // grpc expects a descriptor value to register.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProjectVersionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProjectVersion",
			Handler:    getProjectVersionHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "projectversion/v1/project_version.proto",
}

// RegisterProjectVersionServer registers srv on the provided registrar.
func RegisterProjectVersionServer(registrar grpc.ServiceRegistrar, srv ProjectVersionServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// getProjectVersionHandler decodes the request and dispatches through the interceptor chain.
func getProjectVersionHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature is dictated by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	server, _ := srv.(ProjectVersionServer)

	if interceptor == nil {
		return server.GetProjectVersion(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetProjectVersionMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		request, _ := req.(*emptypb.Empty)

		return server.GetProjectVersion(ctx, request)
	}

	return interceptor(ctx, in, info, handler)
}
