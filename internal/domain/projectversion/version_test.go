package projectversion

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjectVersion_EmptyByDefault ensures a fresh holder reports no version.
func TestProjectVersion_EmptyByDefault(t *testing.T) {
	t.Parallel()

	p := New()
	require.Empty(t, p.Version())
	require.True(t, p.Snapshot().IsZero())
}

// TestProjectVersion_StoreRejectsBlank verifies blank values never overwrite the holder.
func TestProjectVersion_StoreRejectsBlank(t *testing.T) {
	t.Parallel()

	p := New()
	require.True(t, p.Store(" 1.0.1\n", ModeFile))
	require.Equal(t, "1.0.1", p.Version())

	require.False(t, p.Store("", ModeGit))
	require.False(t, p.Store(" \t\n", ModeGit))
	require.Equal(t, "1.0.1", p.Version())
	require.Equal(t, ModeFile, p.Snapshot().Mode)
}

// TestProjectVersion_StoreStampsTime checks ResolvedAt comes from the holder clock.
func TestProjectVersion_StoreStampsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return at }

	require.True(t, p.Store("abc1234", ModeGit))

	snapshot := p.Snapshot()
	require.Equal(t, "abc1234", snapshot.Version)
	require.Equal(t, ModeGit, snapshot.Mode)
	require.Equal(t, at, snapshot.ResolvedAt)
}

// TestProjectVersion_ZeroValueUsable ensures the zero value works without New.
func TestProjectVersion_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var p ProjectVersion
	require.True(t, p.Store("v2.0.0", ModeGit))
	require.Equal(t, "v2.0.0", p.Version())
	require.False(t, p.Snapshot().ResolvedAt.IsZero())
}

// TestProjectVersion_Restore verifies persisted snapshots seed the holder unless blank.
func TestProjectVersion_Restore(t *testing.T) {
	t.Parallel()

	p := New()
	require.False(t, p.Restore(Snapshot{Version: "  "}))
	require.Empty(t, p.Version())

	at := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	require.True(t, p.Restore(Snapshot{Version: "1.2.3", Mode: ModeFile, ResolvedAt: at}))
	require.Equal(t, Snapshot{Version: "1.2.3", Mode: ModeFile, ResolvedAt: at}, p.Snapshot())
}

// TestProjectVersion_ConcurrentReaders exercises readers racing a single writer.
func TestProjectVersion_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	p := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				v := p.Version()
				assert.Contains(t, []string{"", "1.0.1"}, v)
			}
		}()
	}

	p.Store("1.0.1", ModeFile)
	wg.Wait()

	require.Equal(t, "1.0.1", p.Version())
}
