// Package sysenv answers whether a runtime capability, such as spawning
// external processes, is permitted in the current environment.
package sysenv
