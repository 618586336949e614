package sysenv

import (
	"os"
	"strings"
)

const (
	// FunctionExec guards every external process invocation.
	FunctionExec = "exec"

	// DisableFunctionsEnv lists disabled functions as a comma-separated value.
	DisableFunctionsEnv = "PROJECT_VERSION_DISABLE_FUNCTIONS"
)

// Environment inspects the restriction lists of the running process.
type Environment struct {
	// disabled holds normalized function names disabled by configuration.
	disabled map[string]struct{}
	// lookupEnv reads environment variables; replaceable in tests.
	lookupEnv func(string) (string, bool)
}

// Option configures an Environment.
type Option func(*Environment)

// WithLookupEnv replaces the environment variable lookup.
func WithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(e *Environment) {
		if lookupEnv != nil {
			e.lookupEnv = lookupEnv
		}
	}
}

// New builds an Environment from the configured list of disabled functions.
func New(disabled []string, opts ...Option) *Environment {
	e := &Environment{
		disabled:  make(map[string]struct{}, len(disabled)),
		lookupEnv: os.LookupEnv,
	}

	for _, name := range disabled {
		if name = normalize(name); name != "" {
			e.disabled[name] = struct{}{}
		}
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// IsFunctionDisabled reports whether the named function is disabled either by
// configuration or by the PROJECT_VERSION_DISABLE_FUNCTIONS variable.
func (e *Environment) IsFunctionDisabled(name string) bool {
	name = normalize(name)
	if name == "" {
		return false
	}

	if _, ok := e.disabled[name]; ok {
		return true
	}

	raw, ok := e.lookupEnv(DisableFunctionsEnv)
	if !ok {
		return false
	}

	for _, item := range strings.Split(raw, ",") {
		if normalize(item) == name {
			return true
		}
	}

	return false
}

// normalize lowercases and trims a function name.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
