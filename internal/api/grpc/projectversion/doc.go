// Package projectversion exposes the resolved project version over gRPC.
//
// The service is registered by hand with well-known protobuf messages
// (google.protobuf.Empty in, google.protobuf.StringValue out), so it needs no
// generated stubs. A grpc.health.v1 server reports SERVING once a version is
// known.
package projectversion
