// Package resolve implements the default command: resolve the project
// version once and print it to stdout.
package resolve
