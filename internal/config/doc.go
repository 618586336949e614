// Package config defines the settings of the project-version binaries and
// provides helpers to load, validate and save them.
//
// Settings are read from a YAML file through viper, overridden by
// PROJECT_VERSION_* environment variables, and written back with yaml.v3.
package config
