// Package projectversion contains the core domain types of the resolver.
//
// Mode selects where the version comes from, GitFormat selects which git
// components make up the display string, and ProjectVersion is the single
// value holder written by the resolver and read by every consumer.
package projectversion
