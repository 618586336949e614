package integration

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/service/common"
	"github.com/oshokin/project-version/internal/service/resolve"
	"github.com/oshokin/project-version/internal/service/server"
)

// writeConfig stores a file-mode configuration rooted at a fresh project directory.
func writeConfig(t *testing.T, addr, version string) (cfgPath, statePath string) {
	t.Helper()

	root := t.TempDir()
	statePath = filepath.Join(root, ".state", "version.yaml")
	cfgPath = filepath.Join(root, config.DefaultConfigFilename)

	if version != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "VERSION"), []byte(version+"\n"), 0o600))
	}

	cfg := config.Default()
	cfg.ProjectRoot = root
	cfg.StateFile = statePath
	cfg.ServerAddress = addr
	cfg.DisabledFunctions = []string{"exec"}
	require.NoError(t, config.Save(cfgPath, cfg))

	return cfgPath, statePath
}

// startGRPC runs the real server in the background.
// Returns a stop function to gracefully shutdown the server.
func startGRPC(t *testing.T, cfgPath string) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = server.Run(ctx, &server.Options{ConfigPath: cfgPath}) //nolint:errcheck // Failures surface through the client.
	}()

	// Wait briefly for server to start listening.
	time.Sleep(150 * time.Millisecond)

	return func() {
		cancel()
		<-done
	}
}

// freeAddress reserves a local TCP port.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

// TestGRPC_Roundtrip starts the real server and reads the version resolved from disk.
func TestGRPC_Roundtrip(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	cfgPath, statePath := writeConfig(t, addr, "1.0.1")

	stop := startGRPC(t, cfgPath)
	defer stop()

	ctx := context.Background()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	got, err := c.GetProjectVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.1", got)

	// Verify the resolution was persisted.
	_, err = os.Stat(statePath)
	require.NoError(t, err)
}

// TestResolve_PriorValueSurvivesAcrossRuns removes the version file between runs.
func TestResolve_PriorValueSurvivesAcrossRuns(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, "127.0.0.1:0", "2.0.0")
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, resolve.Run(ctx, &resolve.Options{ConfigPath: cfgPath, Out: &out}))
	require.Equal(t, "2.0.0\n", out.String())

	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(cfgPath), "VERSION")))

	holder, err := resolve.Resolve(ctx, &resolve.Options{ConfigPath: cfgPath})
	require.NoError(t, err)

	snapshot := holder.Snapshot()
	require.Equal(t, "2.0.0", snapshot.Version)
	require.Equal(t, domain.ModeFile, snapshot.Mode)
}

// TestResolve_GitDisabledLeavesVersionUnset switches to git mode with exec disabled.
func TestResolve_GitDisabledLeavesVersionUnset(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, "127.0.0.1:0", "")
	mode := "git"

	var out bytes.Buffer
	require.NoError(t, resolve.Run(context.Background(), &resolve.Options{
		ConfigPath: cfgPath,
		Overrides:  common.Overrides{Mode: &mode},
		Out:        &out,
	}))
	require.Equal(t, "\n", out.String())
}
