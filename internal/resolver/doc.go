// Package resolver selects the configured version source and stores the
// result in the shared ProjectVersion holder.
package resolver
