package sysenv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// noEnv is a lookup that never finds a variable.
func noEnv(string) (string, bool) { return "", false }

// TestIsFunctionDisabled_Config verifies configured names are matched case-insensitively.
func TestIsFunctionDisabled_Config(t *testing.T) {
	t.Parallel()

	env := New([]string{" EXEC ", "", "shell_exec"}, WithLookupEnv(noEnv))

	require.True(t, env.IsFunctionDisabled(FunctionExec))
	require.True(t, env.IsFunctionDisabled("Shell_Exec"))
	require.False(t, env.IsFunctionDisabled("proc_open"))
	require.False(t, env.IsFunctionDisabled(""))
}

// TestIsFunctionDisabled_Env verifies the environment variable list is honored.
func TestIsFunctionDisabled_Env(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		require.Equal(t, DisableFunctionsEnv, key)

		return "system, exec ,passthru", true
	}

	env := New(nil, WithLookupEnv(lookup))

	require.True(t, env.IsFunctionDisabled(FunctionExec))
	require.True(t, env.IsFunctionDisabled("passthru"))
	require.False(t, env.IsFunctionDisabled("popen"))
}

// TestIsFunctionDisabled_NothingDisabled ensures the default environment allows exec.
func TestIsFunctionDisabled_NothingDisabled(t *testing.T) {
	t.Parallel()

	env := New(nil, WithLookupEnv(noEnv))
	require.False(t, env.IsFunctionDisabled(FunctionExec))
}
