// Package state persists the last resolved project version.
//
// The FileRepository stores the snapshot as YAML on disk so that a prior
// value survives across runs when the source later becomes unavailable.
package state
