// Package server resolves the project version once at startup and serves
// it over gRPC until the context is canceled.
package server
