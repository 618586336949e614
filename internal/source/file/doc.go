// Package file reads the project version from a static file.
//
// Paths may name the file itself or its directory, in which case the default
// VERSION filename is appended. The EXT:<key>/ prefix is expanded against the
// configured extensions root; other relative paths resolve against the
// project root.
package file
