//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	api "github.com/oshokin/project-version/internal/api/grpc/projectversion"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
)

// staticService serves a fixed snapshot.
type staticService domain.Snapshot

// GetProjectVersion returns the fixed snapshot.
func (s staticService) GetProjectVersion(context.Context) domain.Snapshot { return domain.Snapshot(s) }

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_Close_Nil ensures Close tolerates nil receivers.
func TestClient_Close_Nil(t *testing.T) {
	t.Parallel()

	var c *Client
	require.NoError(t, c.Close())
}

// TestClient_GetProjectVersion reads the version from an in-memory server.
func TestClient_GetProjectVersion(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	api.RegisterProjectVersionServer(grpcServer, api.NewServer(staticService{Version: "1.0.1"}))

	go func() {
		_ = grpcServer.Serve(lis)
	}()
	defer grpcServer.Stop()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client := newClient(conn, WithCallTimeout(2*time.Second))
	defer func() {
		_ = client.Close()
	}()

	require.Equal(t, 2*time.Second, client.callTimeout)

	got, err := client.GetProjectVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.0.1", got)
}
