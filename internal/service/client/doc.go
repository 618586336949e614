// Package client implements the `get` command: ask a running version server
// for its project version and print it.
package client
