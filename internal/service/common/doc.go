// Package common holds helpers shared by several services.
//
// It builds a Resolver from Config, seeds and persists the holder through the
// state repository, and provides a lightweight gRPC client with timeouts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
