package git

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
)

// skipWithoutShell skips tests relying on POSIX shell utilities.
func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}
}

// TestExecRunner_Run covers stdout capture, exit codes and missing binaries.
func TestExecRunner_Run(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	runner := NewExecRunner(0)
	require.Equal(t, DefaultTimeout, runner.timeout)

	stdout, code, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo 1.0.1; echo oops >&2")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "1.0.1\n", stdout)

	_, code, err = runner.Run(context.Background(), "", "sh", "-c", "exit 3")
	require.NoError(t, err)
	require.Equal(t, 3, code)

	_, _, err = runner.Run(context.Background(), "", "definitely-not-a-real-binary-4242")
	require.Error(t, err)
}

// TestExecRunner_Timeout verifies hung commands are cut off and reported as ErrTimeout.
func TestExecRunner_Timeout(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	runner := NewExecRunner(50 * time.Millisecond)

	started := time.Now()
	_, _, err := runner.Run(context.Background(), "", "sleep", "5")
	require.ErrorIs(t, err, ErrTimeout)
	require.Less(t, time.Since(started), 4*time.Second)
}

// TestExecRunner_TimeoutWithDescendant cuts off a command whose child keeps stdout open.
func TestExecRunner_TimeoutWithDescendant(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	runner := NewExecRunner(100 * time.Millisecond)

	started := time.Now()
	_, _, err := runner.Run(context.Background(), "", "sh", "-c", "sleep 3; true")
	require.ErrorIs(t, err, ErrTimeout)
	require.Less(t, time.Since(started), 2*time.Second)
}

// TestReader_RealRepository resolves against a freshly created git repository.
func TestReader_RealRepository(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	dir := t.TempDir()
	gitCmd := func(args ...string) {
		base := []string{
			"-c", "user.name=Project Version",
			"-c", "user.email=project-version@example.com",
			"-c", "commit.gpgsign=false",
			"-c", "tag.gpgsign=false",
		}
		cmd := exec.Command("git", append(base, args...)...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	gitCmd("init", "-q")
	gitCmd("symbolic-ref", "HEAD", "refs/heads/main")

	reader := NewReader(NewExecRunner(10*time.Second), nil, dir)

	// No commits yet: HEAD cannot be resolved.
	_, ok := reader.Resolve(context.Background(), domain.FormatRevision)
	require.False(t, ok)

	gitCmd("commit", "-q", "--allow-empty", "-m", "init")
	gitCmd("tag", "v2.0.0")

	got, ok := reader.Resolve(context.Background(), domain.FormatTag)
	require.True(t, ok)
	require.Equal(t, "v2.0.0", got)

	got, ok = reader.Resolve(context.Background(), domain.FormatRevisionBranch)
	require.True(t, ok)
	require.Regexp(t, `^[0-9a-f]{4,} \(main\)$`, got)
}
