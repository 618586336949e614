package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
)

// Repository defines persistence operations for the project version snapshot.
type Repository interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
}

// FileRepository persists the snapshot to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the state file.
	path string
	// mu protects concurrent access to the state file.
	mu sync.Mutex
}

// record is the on-disk layout of a snapshot.
type record struct {
	Version    string      `yaml:"version"`
	Mode       domain.Mode `yaml:"mode"`
	ResolvedAt time.Time   `yaml:"resolved_at"`
}

var (
	// ErrNotFound is returned when the state file does not exist or holds no version.
	ErrNotFound = errors.New("state not found")
	// errEmptySnapshot is returned when saving a snapshot without a version.
	errEmptySnapshot = errors.New("snapshot has no version")
)

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Snapshot{}, ErrNotFound
		}

		return domain.Snapshot{}, fmt.Errorf("read state file: %w", err)
	}

	var rec record
	if err = yaml.Unmarshal(contents, &rec); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode state file: %w", err)
	}

	if rec.Version == "" {
		return domain.Snapshot{}, ErrNotFound
	}

	return domain.Snapshot{
		Version:    rec.Version,
		Mode:       rec.Mode,
		ResolvedAt: rec.ResolvedAt,
	}, nil
}

// Save writes the snapshot to disk, creating parent directories as needed.
func (r *FileRepository) Save(_ context.Context, snapshot domain.Snapshot) error {
	if snapshot.IsZero() {
		return errEmptySnapshot
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(record{
		Version:    snapshot.Version,
		Mode:       snapshot.Mode,
		ResolvedAt: snapshot.ResolvedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(r.path), 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
