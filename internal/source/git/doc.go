// Package git derives a project version from local git metadata.
//
// Commands run behind the Runner interface so tests can substitute canned
// output; ExecRunner is the os/exec implementation with a per-command timeout.
package git
