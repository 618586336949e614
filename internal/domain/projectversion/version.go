package projectversion

import (
	"strings"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the stored project version.
type Snapshot struct {
	// Version is the display string, empty when nothing was resolved.
	Version string
	// Mode is the source that produced Version.
	Mode Mode
	// ResolvedAt is when Version was stored.
	ResolvedAt time.Time
}

// IsZero reports whether the snapshot carries no version.
func (s Snapshot) IsZero() bool {
	return s.Version == ""
}

// ProjectVersion holds the current project version.
// It is written by the resolver and read by any number of consumers.
// Empty or whitespace-only values are never stored.
type ProjectVersion struct {
	// snapshot is the last stored value.
	snapshot Snapshot
	// now is the clock used to stamp stored values.
	now func() time.Time
	// mu protects snapshot for readers started before resolution completes.
	mu sync.RWMutex
}

// New returns an empty holder.
func New() *ProjectVersion {
	return &ProjectVersion{
		now: time.Now,
	}
}

// Version returns the stored version or an empty string if none was stored.
func (p *ProjectVersion) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.snapshot.Version
}

// Snapshot returns a copy of the stored value and its metadata.
func (p *ProjectVersion) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.snapshot
}

// Store trims value and saves it as produced by mode.
// It reports whether a write happened; blank values leave the holder unchanged.
func (p *ProjectVersion) Store(value string, mode Mode) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot = Snapshot{
		Version:    value,
		Mode:       mode,
		ResolvedAt: p.clock().UTC(),
	}

	return true
}

// clock returns the configured time source, falling back to time.Now for zero-value holders.
func (p *ProjectVersion) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}

	return p.now()
}

// Restore seeds the holder with a previously persisted snapshot.
// Blank snapshots are ignored.
func (p *ProjectVersion) Restore(snapshot Snapshot) bool {
	snapshot.Version = strings.TrimSpace(snapshot.Version)
	if snapshot.Version == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot = snapshot

	return true
}
